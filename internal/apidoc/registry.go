package apidoc

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Registry construction errors.
var (
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrDuplicateOperation = errors.New("duplicate operation")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrDuplicateParameter = errors.New("duplicate parameter")
	ErrUnknownSchema      = errors.New("unknown schema")
)

// Schemas maps component names to their schemas.
type Schemas map[string]*openapi3.Schema

// Registry is the fixed, ordered set of documented operations.
// It is built once by NewRegistry and never modified afterwards.
type Registry struct {
	operations []OperationDescriptor
	schemas    Schemas
}

// NewRegistry validates the descriptors and returns a registry holding copies of them.
func NewRegistry(schemas Schemas, ops ...OperationDescriptor) (Registry, error) {
	seenIDs := make(map[string]bool, len(ops))
	seenKeys := make(map[string]bool, len(ops))

	for _, op := range ops {
		if err := validateOperation(op, schemas); err != nil {
			return Registry{}, err
		}
		if seenIDs[op.ID] {
			return Registry{}, fmt.Errorf("%w: id %q", ErrDuplicateOperation, op.ID)
		}
		if seenKeys[op.Key()] {
			return Registry{}, fmt.Errorf("%w: route %q", ErrDuplicateOperation, op.Key())
		}
		seenIDs[op.ID] = true
		seenKeys[op.Key()] = true
	}

	reg := Registry{
		operations: make([]OperationDescriptor, 0, len(ops)),
		schemas:    maps.Clone(schemas),
	}
	for _, op := range ops {
		reg.operations = append(reg.operations, op.clone())
	}
	return reg, nil
}

// Operations returns the descriptors in registration order.
func (r Registry) Operations() []OperationDescriptor {
	out := make([]OperationDescriptor, 0, len(r.operations))
	for _, op := range r.operations {
		out = append(out, op.clone())
	}
	return out
}

// Operation returns the descriptor with the given id.
func (r Registry) Operation(id string) (OperationDescriptor, bool) {
	for _, op := range r.operations {
		if op.ID == id {
			return op.clone(), true
		}
	}
	return OperationDescriptor{}, false
}

// Len returns the number of operations.
func (r Registry) Len() int {
	return len(r.operations)
}

var knownMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

func validateOperation(op OperationDescriptor, schemas Schemas) error {
	if op.ID == "" {
		return fmt.Errorf("%w: %q has no id", ErrInvalidOperation, op.Key())
	}
	if !slices.Contains(knownMethods, op.Method) {
		return fmt.Errorf("%w: %s has unsupported method %q", ErrInvalidOperation, op.ID, op.Method)
	}
	if !strings.HasPrefix(op.Path, "/") {
		return fmt.Errorf("%w: %s path %q must start with /", ErrInvalidOperation, op.ID, op.Path)
	}
	if len(op.Responses) == 0 {
		return fmt.Errorf("%w: %s declares no responses", ErrInvalidOperation, op.ID)
	}

	templated := op.pathParams()
	seen := make(map[string]bool, len(op.Parameters))

	for _, p := range op.Parameters {
		if err := validateParameter(op, p, templated); err != nil {
			return err
		}
		key := string(p.In) + ":" + p.Name
		if p.In == InHeader {
			key = strings.ToLower(key)
		}
		if seen[key] {
			return fmt.Errorf("%w: %s declares %s parameter %q twice", ErrDuplicateParameter, op.ID, p.In, p.Name)
		}
		seen[key] = true
	}

	for _, name := range templated {
		if !seen[string(InPath)+":"+name] {
			return fmt.Errorf("%w: %s path segment {%s} is not declared", ErrInvalidParameter, op.ID, name)
		}
	}

	if b := op.RequestBody; b != nil {
		if err := checkSchemaRef(b.Schema, schemas); err != nil {
			return fmt.Errorf("%s request body: %w", op.ID, err)
		}
	}
	for status, resp := range op.Responses {
		if err := checkSchemaRef(resp.Schema, schemas); err != nil {
			return fmt.Errorf("%s response %d: %w", op.ID, status, err)
		}
	}

	return nil
}

func validateParameter(op OperationDescriptor, p ParameterSpec, templated []string) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: %s has a parameter without a name", ErrInvalidParameter, op.ID)
	case !p.In.Valid():
		return fmt.Errorf("%w: %s parameter %q has unknown location %q", ErrInvalidParameter, op.ID, p.Name, p.In)
	case !p.Type.Valid():
		return fmt.Errorf("%w: %s parameter %q has unknown type %q", ErrInvalidParameter, op.ID, p.Name, p.Type)
	case len(p.Enum) > 0 && p.Type != TypeString:
		return fmt.Errorf("%w: %s parameter %q: enums are only supported on strings", ErrInvalidParameter, op.ID, p.Name)
	case p.Default != "" && !p.Allows(p.Default):
		return fmt.Errorf("%w: %s parameter %q: default %q is not an allowed value", ErrInvalidParameter, op.ID, p.Name, p.Default)
	}

	if p.In == InPath {
		if !p.Required {
			return fmt.Errorf("%w: %s path parameter %q must be required", ErrInvalidParameter, op.ID, p.Name)
		}
		if !slices.Contains(templated, p.Name) {
			return fmt.Errorf("%w: %s path parameter %q is not in %q", ErrInvalidParameter, op.ID, p.Name, op.Path)
		}
	}
	return nil
}

func checkSchemaRef(ref SchemaRef, schemas Schemas) error {
	switch {
	case ref.Component != "" && ref.Type != "":
		return fmt.Errorf("%w: both component %q and type %q set", ErrUnknownSchema, ref.Component, ref.Type)
	case ref.Component != "":
		if _, ok := schemas[ref.Component]; !ok {
			return fmt.Errorf("%w: component %q", ErrUnknownSchema, ref.Component)
		}
	case !ref.Type.Valid():
		return fmt.Errorf("%w: type %q", ErrUnknownSchema, ref.Type)
	}
	return nil
}

func (d OperationDescriptor) clone() OperationDescriptor {
	out := d
	out.Tags = slices.Clone(d.Tags)
	out.Parameters = make([]ParameterSpec, len(d.Parameters))
	for i, p := range d.Parameters {
		p.Enum = slices.Clone(p.Enum)
		out.Parameters[i] = p
	}
	if d.RequestBody != nil {
		body := *d.RequestBody
		out.RequestBody = &body
	}
	out.Responses = maps.Clone(d.Responses)
	return out
}
