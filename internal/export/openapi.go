// Package export converts compiled schemas to OpenAPI 3 schema objects,
// so validation rules written for sieve can feed API documentation and
// other OpenAPI tooling.
package export

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/sievekit/sieve/pkg/schema"
)

// OpenAPISchema renders a compiled schema as an OpenAPI 3 object schema.
func OpenAPISchema(s schema.Schema) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{},
	}
	for name, cs := range s {
		out.Properties[name] = openapi3.NewSchemaRef("", constraintSchema(cs))
		if cs.Required {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

func constraintSchema(cs *schema.ConstraintSet) *openapi3.Schema {
	out := &openapi3.Schema{}

	switch cs.Type {
	case schema.TypeString:
		out.Type = &openapi3.Types{openapi3.TypeString}
		if cs.MinLength != nil {
			out.MinLength = uint64(*cs.MinLength)
		}
		if cs.MaxLength != nil {
			max := uint64(*cs.MaxLength)
			out.MaxLength = &max
		}
		if cs.Pattern != nil {
			out.Pattern = cs.Pattern.String()
		}
	case schema.TypeInteger:
		out.Type = &openapi3.Types{openapi3.TypeInteger}
	case schema.TypeFloat:
		out.Type = &openapi3.Types{openapi3.TypeNumber}
	case schema.TypeBoolean:
		out.Type = &openapi3.Types{openapi3.TypeBoolean}
	case schema.TypeList:
		out.Type = &openapi3.Types{openapi3.TypeArray}
		if cs.MinLength != nil {
			out.MinItems = uint64(*cs.MinLength)
		}
		if cs.MaxLength != nil {
			max := uint64(*cs.MaxLength)
			out.MaxItems = &max
		}
		if cs.Items != nil {
			out.Items = openapi3.NewSchemaRef("", constraintSchema(cs.Items))
		}
	case schema.TypeMapping:
		if cs.Schema != nil {
			return OpenAPISchema(cs.Schema)
		}
		out.Type = &openapi3.Types{openapi3.TypeObject}
	}

	if cs.Min != nil {
		out.Min = cs.Min
	}
	if cs.Max != nil {
		out.Max = cs.Max
	}
	if len(cs.Allowed) > 0 {
		out.Enum = append(out.Enum, cs.Allowed...)
	}

	// Custom checks have no OpenAPI equivalent and are omitted.
	return out
}
