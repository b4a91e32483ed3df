package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve/internal/loader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMapping_YAML(t *testing.T) {
	path := writeFile(t, "schema.yaml", `
name:
  type: string
  required: true
age:
  type: integer
  min: 0
`)

	raw, err := loader.LoadMapping(path)
	require.NoError(t, err)
	assert.Len(t, raw, 2)

	rules, ok := raw["age"].(map[string]any)
	require.True(t, ok, "nested rules should decode as map[string]any")
	assert.Equal(t, "integer", rules["type"])
}

func TestLoadMapping_JSON(t *testing.T) {
	path := writeFile(t, "doc.json", `{"name": "ada", "age": 36}`)

	doc, err := loader.LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, "ada", doc["name"])
}

func TestLoadMapping_NotAMapping(t *testing.T) {
	path := writeFile(t, "list.yaml", "- a\n- b\n")

	_, err := loader.LoadMapping(path)
	assert.Error(t, err)
}

func TestLoadMapping_MissingFile(t *testing.T) {
	_, err := loader.LoadMapping(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMapping_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	doc, err := loader.LoadMapping(path)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
