package schema

import (
	"fmt"
	"regexp"

	"github.com/mitchellh/mapstructure"

	"github.com/sievekit/sieve/pkg/registry"
)

// rawConstraint is the wire form of a constraint set, as found in a parsed
// YAML or JSON schema file.
type rawConstraint struct {
	Type      string         `mapstructure:"type"`
	Required  bool           `mapstructure:"required"`
	Min       *float64       `mapstructure:"min"`
	Max       *float64       `mapstructure:"max"`
	MinLength *int           `mapstructure:"minlength"`
	MaxLength *int           `mapstructure:"maxlength"`
	Allowed   []any          `mapstructure:"allowed"`
	Pattern   string         `mapstructure:"pattern"`
	Items     map[string]any `mapstructure:"items"`
	Schema    map[string]any `mapstructure:"schema"`
	Check     string         `mapstructure:"check"`
}

// CompileOption configures schema compilation.
type CompileOption func(*compiler)

// WithChecks makes the named predicates in reg available to the "check"
// constraint. Compilation fails when a schema references a name that is
// not registered.
func WithChecks(reg *registry.Registry) CompileOption {
	return func(c *compiler) {
		c.checks = reg
	}
}

type compiler struct {
	checks *registry.Registry
}

// Compile turns a raw rule mapping into an immutable Schema.
// It fails fast on the first configuration error: unknown constraint keys,
// unknown type names, conflicting bounds, invalid patterns, or constraints
// that do not apply to the declared type.
func Compile(raw map[string]any, opts ...CompileOption) (Schema, error) {
	c := &compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c.compile(raw)
}

func (c *compiler) compile(raw map[string]any) (Schema, error) {
	s := make(Schema, len(raw))
	for field, rules := range raw {
		ruleMap, ok := asMapping(rules)
		if !ok {
			return nil, configErr(field, "", "rules must be a mapping, got %T", rules)
		}
		cs, err := c.compileConstraints(field, ruleMap)
		if err != nil {
			return nil, err
		}
		s[field] = cs
	}
	return s, nil
}

func (c *compiler) compileConstraints(field string, rules map[string]any) (*ConstraintSet, error) {
	var rc rawConstraint
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rc,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("schema decoder: %w", err)
	}
	if err := dec.Decode(rules); err != nil {
		return nil, configErr(field, "", "%v", err)
	}
	if len(md.Unused) > 0 {
		return nil, configErr(field, md.Unused[0], "unknown constraint key")
	}

	if rc.Type == "" {
		return nil, configErr(field, "type", "missing")
	}
	t := FieldType(rc.Type)
	if !knownTypes[t] {
		return nil, configErr(field, "type", "unknown type %q", rc.Type)
	}

	cs := &ConstraintSet{
		Type:      t,
		Required:  rc.Required,
		Min:       rc.Min,
		Max:       rc.Max,
		MinLength: rc.MinLength,
		MaxLength: rc.MaxLength,
		Allowed:   rc.Allowed,
		Check:     rc.Check,
	}

	if cs.Min != nil || cs.Max != nil {
		if t != TypeInteger && t != TypeFloat {
			return nil, configErr(field, "min", "numeric bounds require integer or float type, got %s", t)
		}
		if cs.Min != nil && cs.Max != nil && *cs.Min > *cs.Max {
			return nil, configErr(field, "min", "min (%s) exceeds max (%s)", formatBound(*cs.Min), formatBound(*cs.Max))
		}
	}

	if cs.MinLength != nil || cs.MaxLength != nil {
		if t != TypeString && t != TypeList {
			return nil, configErr(field, "minlength", "length bounds require string or list type, got %s", t)
		}
		if cs.MinLength != nil && *cs.MinLength < 0 {
			return nil, configErr(field, "minlength", "must be >= 0")
		}
		if cs.MaxLength != nil && *cs.MaxLength < 0 {
			return nil, configErr(field, "maxlength", "must be >= 0")
		}
		if cs.MinLength != nil && cs.MaxLength != nil && *cs.MinLength > *cs.MaxLength {
			return nil, configErr(field, "minlength", "minlength (%d) exceeds maxlength (%d)", *cs.MinLength, *cs.MaxLength)
		}
	}

	if rc.Pattern != "" {
		if t != TypeString {
			return nil, configErr(field, "pattern", "requires string type, got %s", t)
		}
		re, err := regexp.Compile(rc.Pattern)
		if err != nil {
			return nil, configErr(field, "pattern", "invalid pattern: %v", err)
		}
		cs.Pattern = re
	}

	if rc.Items != nil {
		if t != TypeList {
			return nil, configErr(field, "items", "requires list type, got %s", t)
		}
		items, err := c.compileConstraints(field+".items", rc.Items)
		if err != nil {
			return nil, err
		}
		cs.Items = items
	}

	if rc.Schema != nil {
		if t != TypeMapping {
			return nil, configErr(field, "schema", "requires mapping type, got %s", t)
		}
		nested, err := c.compileNested(field, rc.Schema)
		if err != nil {
			return nil, err
		}
		cs.Schema = nested
	}

	if rc.Check != "" {
		if c.checks == nil {
			return nil, configErr(field, "check", "unknown check %q (no checks registered)", rc.Check)
		}
		fn, ok := c.checks.Lookup(rc.Check)
		if !ok {
			return nil, configErr(field, "check", "unknown check %q", rc.Check)
		}
		cs.checkFn = fn
	}

	return cs, nil
}

func (c *compiler) compileNested(field string, raw map[string]any) (Schema, error) {
	nested, err := c.compile(raw)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			// Qualify nested field names with the parent path.
			ce.Field = field + "." + ce.Field
			return nil, ce
		}
		return nil, err
	}
	return nested, nil
}
