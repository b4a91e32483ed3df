package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/sievekit/sieve/internal/adapters/http"
	"github.com/sievekit/sieve/internal/adapters/memory"
	"github.com/sievekit/sieve/internal/logging"
	"github.com/sievekit/sieve/pkg/schema"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	handler := httpAdapter.NewHandler(httpAdapter.Config{
		Store:  store,
		Logger: logging.NewNop(),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) *schema.Result {
	t.Helper()
	defer resp.Body.Close()
	var res schema.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return &res
}

func TestValidate_InlineSchema(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/validate", httpAdapter.ValidateRequest{
		Schema: map[string]any{
			"age": map[string]any{"type": "integer", "min": 0},
		},
		Document: map[string]any{"age": -5},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"must be >= 0"}, res.Errors["age"])
}

func TestValidate_StoredSchema(t *testing.T) {
	srv, store := newTestServer(t)
	require.NoError(t, store.Save(context.Background(), "user", map[string]any{
		"name": map[string]any{"type": "string", "required": true},
	}))

	resp := postJSON(t, srv.URL+"/v1/validate", httpAdapter.ValidateRequest{
		SchemaName: "user",
		Document:   map[string]any{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"required"}, res.Errors["name"])
}

func TestValidate_UnknownSchemaName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/validate", httpAdapter.ValidateRequest{
		SchemaName: "missing",
		Document:   map[string]any{},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidate_MalformedSchema(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/validate", httpAdapter.ValidateRequest{
		Schema: map[string]any{
			"age": map[string]any{"type": "integer", "min": 10, "max": 1},
		},
		Document: map[string]any{"age": 5},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestValidate_Strict(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/validate", httpAdapter.ValidateRequest{
		Schema:   map[string]any{"name": map[string]any{"type": "string"}},
		Document: map[string]any{"name": "ada", "extra": 1},
		Strict:   true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeResult(t, resp)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"unknown field"}, res.Errors["extra"])
}

func TestSchemaCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	raw := map[string]any{"id": map[string]any{"type": "string", "required": true}}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	// PUT
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/schemas/user", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// GET
	resp, err = client.Get(srv.URL + "/v1/schemas/user")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Contains(t, got, "id")

	// LIST
	resp, err = client.Get(srv.URL + "/v1/schemas")
	require.NoError(t, err)
	var listing map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	resp.Body.Close()
	assert.Contains(t, listing["schemas"], "user")

	// DELETE
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/v1/schemas/user", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/v1/schemas/user")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveSchema_RejectsMalformed(t *testing.T) {
	srv, store := newTestServer(t)

	data, err := json.Marshal(map[string]any{
		"age": map[string]any{"type": "integer", "minimun": 0},
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/schemas/bad", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Never stored.
	_, err = store.Load(context.Background(), "bad")
	assert.Error(t, err)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
