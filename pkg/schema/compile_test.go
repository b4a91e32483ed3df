package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile_UnknownConstraintKey(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": map[string]any{"type": "integer", "minimun": 0},
	})
	if err == nil {
		t.Fatal("Compile() should reject unknown constraint key")
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error should be *ConfigError, got %T", err)
	}
	if ce.Field != "age" || ce.Key != "minimun" {
		t.Errorf("ConfigError = %+v, want field age, key minimun", ce)
	}
}

func TestCompile_MissingType(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": map[string]any{"required": true},
	})
	if err == nil {
		t.Fatal("Compile() should reject constraint set without type")
	}
}

func TestCompile_UnknownType(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": map[string]any{"type": "number"},
	})
	if err == nil {
		t.Fatal("Compile() should reject unknown type name")
	}
}

func TestCompile_MinExceedsMax(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": map[string]any{"type": "integer", "min": 10, "max": 5},
	})
	if err == nil {
		t.Fatal("Compile() should reject min > max")
	}
}

func TestCompile_BoundsRequireNumericType(t *testing.T) {
	_, err := Compile(map[string]any{
		"name": map[string]any{"type": "string", "min": 1},
	})
	if err == nil {
		t.Fatal("Compile() should reject numeric bounds on string type")
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile(map[string]any{
		"zip": map[string]any{"type": "string", "pattern": "["},
	})
	if err == nil {
		t.Fatal("Compile() should reject an invalid pattern")
	}
}

func TestCompile_PatternRequiresStringType(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": map[string]any{"type": "integer", "pattern": `\d+`},
	})
	if err == nil {
		t.Fatal("Compile() should reject pattern on non-string type")
	}
}

func TestCompile_ItemsRequireListType(t *testing.T) {
	_, err := Compile(map[string]any{
		"name": map[string]any{"type": "string", "items": map[string]any{"type": "string"}},
	})
	if err == nil {
		t.Fatal("Compile() should reject items on non-list type")
	}
}

func TestCompile_NestedSchemaErrorsCarryPath(t *testing.T) {
	_, err := Compile(map[string]any{
		"address": map[string]any{
			"type": "mapping",
			"schema": map[string]any{
				"zip": map[string]any{"type": "string", "patern": "x"},
			},
		},
	})
	if err == nil {
		t.Fatal("Compile() should surface nested configuration errors")
	}
	if !strings.Contains(err.Error(), "address.zip") {
		t.Errorf("error %q should name the nested field address.zip", err)
	}
}

func TestCompile_UnknownCheck(t *testing.T) {
	_, err := Compile(map[string]any{
		"phone": map[string]any{"type": "string", "check": "is_phone"},
	})
	if err == nil {
		t.Fatal("Compile() should reject a reference to an unregistered check")
	}
}

func TestCompile_RulesMustBeMapping(t *testing.T) {
	_, err := Compile(map[string]any{
		"age": "integer",
	})
	if err == nil {
		t.Fatal("Compile() should reject non-mapping rules")
	}
}
