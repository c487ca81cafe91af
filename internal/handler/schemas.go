package handler

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tweesky/treedoc/internal/apidoc"
	"github.com/tweesky/treedoc/internal/model"
)

// Component schema names shared by the documented operations.
const (
	SchemaTree     = "Tree"
	SchemaTreeList = "TreeList"
	SchemaNewTree  = "NewTree"
)

// Schemas returns the component schemas referenced by Operations.
func Schemas() apidoc.Schemas {
	return apidoc.Schemas{
		SchemaTree:             treeSchema(),
		SchemaTreeList:         treeListSchema(),
		SchemaNewTree:          newTreeSchema(),
		apidoc.ErrorSchemaName: apidoc.ErrorSchema(),
	}
}

func treeSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("max_height", openapi3.NewStringSchema()).
		WithProperty("endangered", openapi3.NewBoolSchema())
	schema.Required = []string{"id", "name", "max_height"}
	schema.Description = "A tree. endangered is only present in extended responses."
	schema.Example = apidoc.Example(model.SampleTree(model.DefaultTreeID))
	return schema
}

func treeListSchema() *openapi3.Schema {
	trees := openapi3.NewArraySchema()
	trees.Items = openapi3.NewSchemaRef("#/components/schemas/"+SchemaTree, treeSchema())

	schema := openapi3.NewObjectSchema().WithProperty("trees", trees)
	schema.Required = []string{"trees"}
	return schema
}

func newTreeSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("url", openapi3.NewStringSchema()).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("image", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("max_height", openapi3.NewStringSchema()).
		WithProperty("endangered", openapi3.NewBoolSchema())
	schema.Required = []string{"url", "title", "image"}
	schema.Description = "Payload accepted when planting a tree"
	return schema
}
