package middleware

import "github.com/sievekit/sieve/pkg/ports"

// Middleware allows wrapping a SchemaStore to add behavior.
type Middleware func(ports.SchemaStore) ports.SchemaStore
