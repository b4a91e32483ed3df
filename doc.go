/*
Package sieve validates structured documents against declarative schemas.

A schema maps field names to constraint sets (type, required, bounds, allowed
values, patterns, nested schemas, custom checks). Schemas are written as plain
YAML or JSON mappings, compiled once, and evaluated against any number of
documents. Evaluation collects every violation into a structured result
instead of failing on the first one, which makes the output directly usable
for API error responses.

# Architecture

The core lives in pkg/schema (compile and evaluate) and pkg/registry (named
custom checks). Storage backends implement pkg/ports.SchemaStore; memory and
Redis adapters ship in internal/adapters. The toolkit is exposed through this
facade, a CLI (cmd/sieve), an HTTP API, and an MCP server. This Hexagonal
Architecture keeps the evaluator free of I/O: it is deterministic, allocation
bounded, and safe to share across goroutines.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/sievekit/sieve"
	)

	func main() {
		v, err := sieve.New(map[string]any{
			"name": map[string]any{"type": "string", "required": true},
			"age":  map[string]any{"type": "integer", "min": 0},
		})
		if err != nil {
			log.Fatal(err) // configuration error: the schema itself is malformed
		}

		res := v.Validate(map[string]any{"age": -5})
		fmt.Println(res.Valid)  // false
		fmt.Println(res.Errors) // map[age:[must be >= 0] name:[required]]
	}
*/
package sieve
