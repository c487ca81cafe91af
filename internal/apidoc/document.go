package apidoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIVersion is the version of the OpenAPI specification emitted by Build.
const OpenAPIVersion = "3.0.2"

// ErrorSchemaName is the component every operation's default response refers to.
const ErrorSchemaName = "Error"

// Info carries the document-level metadata.
type Info struct {
	Title             string
	Description       string
	Version           string
	TermsOfService    string
	ServerURL         string
	ServerDescription string
	// BearerScheme names the HTTP bearer security scheme used by authenticated operations.
	BearerScheme string
	// Tags documents the operation groups in display order.
	Tags []Tag
}

// Tag describes a group of operations.
type Tag struct {
	Name        string
	Description string
}

// Build renders the registry as a validated OpenAPI document.
func Build(reg Registry, info Info) (*openapi3.T, error) {
	if info.BearerScheme == "" {
		return nil, fmt.Errorf("build openapi document: bearer scheme name is required")
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:          info.Title,
			Description:    info.Description,
			Version:        info.Version,
			TermsOfService: info.TermsOfService,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(reg.schemas)+1),
			SecuritySchemes: openapi3.SecuritySchemes{
				info.BearerScheme: &openapi3.SecuritySchemeRef{
					Value: openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer"),
				},
			},
		},
	}

	if info.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: info.ServerURL, Description: info.ServerDescription}}
	}
	for _, tag := range info.Tags {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: tag.Name, Description: tag.Description})
	}

	for name, schema := range reg.schemas {
		if schema != nil {
			doc.Components.Schemas[name] = openapi3.NewSchemaRef("", schema)
		}
	}
	if _, ok := doc.Components.Schemas[ErrorSchemaName]; !ok {
		doc.Components.Schemas[ErrorSchemaName] = openapi3.NewSchemaRef("", ErrorSchema())
	}

	for _, op := range reg.operations {
		item := doc.Paths.Value(op.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(op.Path, item)
		}
		item.SetOperation(op.Method, buildOperation(op, doc.Components.Schemas, info.BearerScheme))
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// ErrorSchema returns the schema of the {"error": message} body.
func ErrorSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema().WithMinLength(1))
	schema.Required = []string{"error"}
	schema.Description = "Error returned by every failing operation"
	return schema
}

func buildOperation(op OperationDescriptor, components openapi3.Schemas, bearer string) *openapi3.Operation {
	out := openapi3.NewOperation()
	out.OperationID = op.ID
	out.Summary = op.Summary
	out.Description = op.Description
	out.Tags = op.Tags
	out.Deprecated = op.Deprecated

	security := openapi3.NewSecurityRequirements()
	if op.RequiresAuth {
		security.With(openapi3.NewSecurityRequirement().Authenticate(bearer))
	}
	out.Security = security

	for _, p := range op.Parameters {
		out.AddParameter(buildParameter(p))
	}

	if b := op.RequestBody; b != nil {
		body := openapi3.NewRequestBody().
			WithDescription(b.Description).
			WithRequired(b.Required)
		body.Content = openapi3.Content{
			b.ContentType: &openapi3.MediaType{
				Schema:  schemaRef(b.Schema, components),
				Example: b.Example,
			},
		}
		out.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	responses := &openapi3.Responses{}
	responses.Set("default", &openapi3.ResponseRef{Value: errorResponse(components)})
	codes := make([]int, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		spec := op.Responses[code]
		resp := openapi3.NewResponse().WithDescription(spec.Description)
		resp.Content = openapi3.Content{
			spec.ContentType: &openapi3.MediaType{
				Schema:  schemaRef(spec.Schema, components),
				Example: spec.Example,
			},
		}
		responses.Set(strconv.Itoa(code), &openapi3.ResponseRef{Value: resp})
	}
	out.Responses = responses

	return out
}

func errorResponse(components openapi3.Schemas) *openapi3.Response {
	resp := openapi3.NewResponse().WithDescription("Unexpected error")
	resp.Content = openapi3.NewContentWithJSONSchemaRef(componentRef(ErrorSchemaName, components))
	return resp
}

func buildParameter(p ParameterSpec) *openapi3.Parameter {
	schema := primitiveSchema(p.Type)
	if len(p.Enum) > 0 {
		values := make([]any, len(p.Enum))
		for i, v := range p.Enum {
			values[i] = v
		}
		schema.Enum = values
	}
	if p.Default != "" {
		schema.Default = typedValue(p.Type, p.Default)
	}

	param := &openapi3.Parameter{
		Name:        p.Name,
		In:          string(p.In),
		Description: p.Description,
		Required:    p.Required,
		Deprecated:  p.Deprecated,
		Schema:      openapi3.NewSchemaRef("", schema),
	}
	if p.Example != "" {
		param.Example = typedValue(p.Type, p.Example)
	}
	return param
}

func schemaRef(ref SchemaRef, components openapi3.Schemas) *openapi3.SchemaRef {
	if ref.Component != "" {
		return componentRef(ref.Component, components)
	}
	return openapi3.NewSchemaRef("", primitiveSchema(ref.Type))
}

func componentRef(name string, components openapi3.Schemas) *openapi3.SchemaRef {
	var value *openapi3.Schema
	if resolved := components[name]; resolved != nil {
		value = resolved.Value
	}
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func primitiveSchema(t Type) *openapi3.Schema {
	switch t {
	case TypeInteger:
		return openapi3.NewIntegerSchema()
	case TypeBoolean:
		return openapi3.NewBoolSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

// typedValue converts a textual default or example to the JSON value of its type.
// Values that do not parse are kept as strings and surface during validation.
func typedValue(t Type, raw string) any {
	switch t {
	case TypeInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return float64(n)
		}
	case TypeBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// Example converts v into its generic JSON form so it can be embedded as an
// example value and validated against a schema.
func Example(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
