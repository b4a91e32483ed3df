package schema

import (
	"reflect"
	"regexp"

	"github.com/sievekit/sieve/pkg/registry"
)

// FieldType identifies the expected shape of a field value.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeBoolean FieldType = "boolean"
	TypeList    FieldType = "list"
	TypeMapping FieldType = "mapping"
)

// knownTypes is the set of valid values for the "type" constraint.
var knownTypes = map[FieldType]bool{
	TypeString:  true,
	TypeInteger: true,
	TypeFloat:   true,
	TypeBoolean: true,
	TypeList:    true,
	TypeMapping: true,
}

// ConstraintSet holds the rules attached to one schema field.
// Instances are built by Compile and must not be mutated afterwards.
type ConstraintSet struct {
	Type      FieldType
	Required  bool
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
	Allowed   []any
	Pattern   *regexp.Regexp
	// Items constrains every element of a list field.
	Items *ConstraintSet
	// Schema constrains the fields of a mapping field.
	Schema Schema
	// Check names a predicate registered via pkg/registry.
	Check string

	checkFn registry.CheckFunc
}

// Schema is an immutable mapping of field names to their constraints.
type Schema map[string]*ConstraintSet

// Result is the outcome of one evaluation: pass/fail plus per-field
// error messages, keyed by field path, in the order they were recorded.
type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (r *Result) add(path, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string][]string)
	}
	r.Errors[path] = append(r.Errors[path], msg)
}

// matchesType reports whether value conforms to the field type.
func matchesType(t FieldType, value any) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeInteger:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			// Accept floats that are whole numbers (from JSON unmarshaling)
			return v == float64(int64(v))
		case float32:
			return v == float32(int64(v))
		default:
			return false
		}
	case TypeFloat:
		switch value.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		default:
			return false
		}
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeList:
		k := reflect.ValueOf(value).Kind()
		return k == reflect.Slice || k == reflect.Array
	case TypeMapping:
		rv := reflect.ValueOf(value)
		return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
	default:
		return false
	}
}

// asFloat converts any numeric value to float64.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// length returns the element count of a string or sequence value.
func length(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return len([]rune(s)), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}
	return 0, false
}

// asList normalizes a slice or array value to []any.
func asList(value any) ([]any, bool) {
	if l, ok := value.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMapping normalizes a string-keyed map value to map[string]any.
func asMapping(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// equalValue compares two values for the allowed-values check.
// Numbers compare by magnitude so YAML ints match JSON floats.
func equalValue(a, b any) bool {
	fa, aok := asFloat(a)
	fb, bok := asFloat(b)
	if aok && bok {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}
