// Package apidoc holds the declarative description of every API operation
// and turns it into an OpenAPI 3 document and an interactive explorer.
//
// Descriptors are metadata only: they are built once at startup, collected
// into an immutable Registry and never consulted to change runtime behavior,
// except where a handler explicitly checks a value against its ParameterSpec.
package apidoc

import (
	"slices"
	"strings"
)

// Location is where a parameter is carried in the request.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InCookie Location = "cookie"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	switch l {
	case InPath, InQuery, InHeader, InCookie:
		return true
	}
	return false
}

// Type is a primitive schema type.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Valid reports whether t is a known primitive type.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean:
		return true
	}
	return false
}

// Content types used by API responses and request bodies.
const (
	ContentJSON = "application/json"
	ContentText = "text/plain"
)

// ParameterSpec describes one accepted request parameter.
type ParameterSpec struct {
	Name        string
	In          Location
	Description string
	Required    bool
	Deprecated  bool
	Type        Type
	// Enum restricts string parameters to a fixed set of values.
	Enum []string
	// Default is the documented value used when the parameter is absent.
	Default string
	Example string
}

// Allows reports whether value is acceptable for an enum-restricted parameter.
// Parameters without an enum accept any value.
func (p ParameterSpec) Allows(value string) bool {
	if len(p.Enum) == 0 {
		return true
	}
	return slices.Contains(p.Enum, value)
}

// EnumList returns the allowed values joined for use in messages.
func (p ParameterSpec) EnumList() string {
	return strings.Join(p.Enum, ", ")
}

// SchemaRef points either at a named component schema or a primitive type.
// Exactly one of Component and Type is set.
type SchemaRef struct {
	Component string
	Type      Type
}

// Component returns a reference to a named component schema.
func Component(name string) SchemaRef {
	return SchemaRef{Component: name}
}

// Primitive returns a reference to a primitive schema.
func Primitive(t Type) SchemaRef {
	return SchemaRef{Type: t}
}

// BodySpec describes a request body.
type BodySpec struct {
	Description string
	Required    bool
	ContentType string
	Schema      SchemaRef
	Example     any
}

// ResponseSpec describes one documented response.
type ResponseSpec struct {
	Description string
	ContentType string
	Schema      SchemaRef
	Example     any
}

// OperationDescriptor is the documentation metadata of one HTTP operation.
type OperationDescriptor struct {
	// ID is unique across the registry and becomes the operationId.
	ID           string
	Method       string
	Path         string
	Summary      string
	Description  string
	Tags         []string
	Parameters   []ParameterSpec
	RequestBody  *BodySpec
	RequiresAuth bool
	Deprecated   bool
	// Responses is keyed by HTTP status code.
	Responses map[int]ResponseSpec
}

// Parameter returns the parameter declared with the given name and location.
func (d OperationDescriptor) Parameter(name string, in Location) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name && p.In == in {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Key returns the "METHOD path" pair identifying the route.
func (d OperationDescriptor) Key() string {
	return d.Method + " " + d.Path
}

// pathParams lists the {name} segments of the path template.
func (d OperationDescriptor) pathParams() []string {
	var names []string
	for _, seg := range strings.Split(d.Path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			names = append(names, strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}"))
		}
	}
	return names
}
