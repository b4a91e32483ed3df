/*
Package ports defines the driven ports (interfaces) for the sieve toolkit.

These interfaces decouple the validation core from external implementations,
allowing the CLI, HTTP API and MCP server to work with various schema storage
backends.

# Key Interfaces

  - SchemaStore: Responsible for persisting and loading named schema definitions
    in their raw rule form (e.g., in memory or Redis).
*/
package ports
