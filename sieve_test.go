package sieve_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievekit/sieve"
	"github.com/sievekit/sieve/pkg/registry"
)

func TestNew_CompilesSchema(t *testing.T) {
	v, err := sieve.New(map[string]any{
		"name": map[string]any{"type": "string", "required": true},
		"age":  map[string]any{"type": "integer", "min": 0},
	})
	require.NoError(t, err)

	res := v.Validate(map[string]any{"age": -5})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"must be >= 0"}, res.Errors["age"])
	assert.Equal(t, []string{"required"}, res.Errors["name"])
}

func TestNew_MalformedSchema(t *testing.T) {
	_, err := sieve.New(map[string]any{
		"age": map[string]any{"type": "integer", "min": 10, "max": 1},
	})
	assert.Error(t, err)
}

func TestValidator_Strict(t *testing.T) {
	v, err := sieve.New(map[string]any{
		"name": map[string]any{"type": "string"},
	}, sieve.WithStrict())
	require.NoError(t, err)

	res := v.Validate(map[string]any{"name": "ada", "extra": true})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"unknown field"}, res.Errors["extra"])
}

func TestValidator_CustomChecks(t *testing.T) {
	reg := registry.New()
	reg.Register("lowercase", func(field string, value any) error {
		s, _ := value.(string)
		for _, r := range s {
			if r >= 'A' && r <= 'Z' {
				return fmt.Errorf("must be lowercase")
			}
		}
		return nil
	})

	v, err := sieve.New(map[string]any{
		"slug": map[string]any{"type": "string", "check": "lowercase"},
	}, sieve.WithChecks(reg))
	require.NoError(t, err)

	res := v.Validate(map[string]any{"slug": "Not-Lower"})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"must be lowercase"}, res.Errors["slug"])
}

func TestValidator_ConcurrentUse(t *testing.T) {
	v, err := sieve.New(map[string]any{
		"n": map[string]any{"type": "integer", "min": 0},
	})
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				res := v.Validate(map[string]any{"n": n - 4})
				if (n-4 >= 0) != res.Valid {
					t.Errorf("unexpected result for n=%d", n-4)
				}
			}
			done <- true
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
