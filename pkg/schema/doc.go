// Package schema implements declarative validation of structured documents.
//
// A Schema maps field names to constraint sets. Constraint sets are expressed
// as plain maps (typically parsed from YAML or JSON) and compiled once into an
// immutable Schema; documents are then evaluated against it, producing a
// Result with per-field error messages instead of a single opaque error.
//
// Basic usage:
//
//	s, err := schema.Compile(map[string]any{
//	    "name": map[string]any{"type": "string", "required": true},
//	    "age":  map[string]any{"type": "integer", "min": 0},
//	})
//	if err != nil {
//	    // malformed schema (configuration error)
//	}
//
//	res := schema.Evaluate(s, map[string]any{"age": -5})
//	// res.Valid == false
//	// res.Errors == map[string][]string{
//	//     "name": {"required"},
//	//     "age":  {"must be >= 0"},
//	// }
//
// Constraint violations never abort evaluation: every rule failure becomes an
// entry in the Result, keyed by field path. Nested mapping fields use dotted
// paths ("address.city"); list elements use index paths ("tags.1").
//
// A compiled Schema holds no mutable state and may be shared across
// goroutines; each Evaluate call owns its Result.
package schema
