// Package mcp exposes the validation toolkit as a Model Context Protocol
// server, so AI agents can evaluate documents and browse stored schemas
// as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sievekit/sieve"
	"github.com/sievekit/sieve/pkg/ports"
	"github.com/sievekit/sieve/pkg/registry"
	"github.com/sievekit/sieve/pkg/schema"
)

// Server wraps the validation core and exposes it as an MCP Server.
type Server struct {
	store     ports.SchemaStore
	checks    *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.SchemaStore, checks *registry.Registry) *Server {
	s := &Server{
		store:     store,
		checks:    checks,
		mcpServer: server.NewMCPServer("sieve-mcp", sieve.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_document
	validateTool := mcp.NewTool("validate_document",
		mcp.WithDescription("Validate a JSON document against a schema. Provide either a stored schema name or an inline schema."),
		mcp.WithString("schema_name", mcp.Description("Name of a stored schema (optional if schema is provided)")),
		mcp.WithString("schema", mcp.Description("JSON object of field rules (optional if schema_name is provided)")),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON object to validate")),
		mcp.WithBoolean("strict", mcp.Description("Report unknown document fields as errors")),
		mcp.WithOutputSchema[schema.Result](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: check_schema
	s.mcpServer.AddTool(mcp.NewTool("check_schema",
		mcp.WithDescription("Compile a schema and report configuration errors without validating any document."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("JSON object of field rules")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := decodeMapping(request.GetString("schema", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("schema is not a JSON object: %v", err)), nil
		}
		if _, err := s.compile(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("schema is valid"), nil
	})

	// TOOL: get_schema
	s.mcpServer.AddTool(mcp.NewTool("get_schema",
		mcp.WithDescription("Fetch a stored schema by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Schema name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := s.store.Load(ctx, request.GetString("name", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(raw)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of all stored schemas."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (schema.Result, error) {
	doc, err := decodeMapping(request.GetString("document", ""))
	if err != nil {
		return schema.Result{}, fmt.Errorf("document is not a JSON object: %w", err)
	}

	var raw map[string]any
	if inline := request.GetString("schema", ""); inline != "" {
		raw, err = decodeMapping(inline)
		if err != nil {
			return schema.Result{}, fmt.Errorf("schema is not a JSON object: %w", err)
		}
	} else if name := request.GetString("schema_name", ""); name != "" {
		raw, err = s.store.Load(ctx, name)
		if err != nil {
			return schema.Result{}, fmt.Errorf("schema %q: %w", name, err)
		}
	} else {
		return schema.Result{}, fmt.Errorf("one of schema or schema_name is required")
	}

	compiled, err := s.compile(raw)
	if err != nil {
		return schema.Result{}, err
	}

	var opts []schema.Option
	if request.GetBool("strict", false) {
		opts = append(opts, schema.Strict())
	}

	return *schema.Evaluate(compiled, doc, opts...), nil
}

func (s *Server) compile(raw map[string]any) (schema.Schema, error) {
	var opts []schema.CompileOption
	if s.checks != nil {
		opts = append(opts, schema.WithChecks(s.checks))
	}
	return schema.Compile(raw, opts...)
}

func decodeMapping(src string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		return nil, err
	}
	return m, nil
}
