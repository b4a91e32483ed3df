package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/internal/export"
	"github.com/sievekit/sieve/pkg/schema"
)

func TestOpenAPISchema(t *testing.T) {
	s, err := schema.Compile(map[string]any{
		"name": map[string]any{"type": "string", "required": true, "minlength": 1, "maxlength": 64},
		"age":  map[string]any{"type": "integer", "min": 0, "max": 150},
		"role": map[string]any{"type": "string", "allowed": []any{"admin", "user"}},
		"tags": map[string]any{"type": "list", "items": map[string]any{"type": "string"}},
		"address": map[string]any{
			"type": "mapping",
			"schema": map[string]any{
				"city": map[string]any{"type": "string", "required": true},
			},
		},
	})
	require.NoError(t, err)

	out := export.OpenAPISchema(s)
	assert.True(t, out.Type.Is("object"))
	assert.Equal(t, []string{"name"}, out.Required)

	name := out.Properties["name"].Value
	assert.True(t, name.Type.Is("string"))
	assert.Equal(t, uint64(1), name.MinLength)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, uint64(64), *name.MaxLength)

	age := out.Properties["age"].Value
	assert.True(t, age.Type.Is("integer"))
	require.NotNil(t, age.Min)
	assert.Equal(t, float64(0), *age.Min)

	role := out.Properties["role"].Value
	assert.ElementsMatch(t, []any{"admin", "user"}, role.Enum)

	tags := out.Properties["tags"].Value
	assert.True(t, tags.Type.Is("array"))
	require.NotNil(t, tags.Items)
	assert.True(t, tags.Items.Value.Type.Is("string"))

	address := out.Properties["address"].Value
	assert.True(t, address.Type.Is("object"))
	assert.Equal(t, []string{"city"}, address.Required)
}

func TestOpenAPISchema_Serializable(t *testing.T) {
	s, err := schema.Compile(map[string]any{
		"zip": map[string]any{"type": "string", "pattern": `^\d{5}$`},
	})
	require.NoError(t, err)

	data, err := export.OpenAPISchema(s).MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pattern"`)
}
