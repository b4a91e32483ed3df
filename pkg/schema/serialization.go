package schema

import (
	"encoding/json"
	"fmt"
)

// Rules returns the constraint set in its raw wire form, suitable for
// storage or transport. Compiling the returned map reproduces an
// equivalent ConstraintSet.
func (cs *ConstraintSet) Rules() map[string]any {
	rules := map[string]any{"type": string(cs.Type)}
	if cs.Required {
		rules["required"] = true
	}
	if cs.Min != nil {
		rules["min"] = *cs.Min
	}
	if cs.Max != nil {
		rules["max"] = *cs.Max
	}
	if cs.MinLength != nil {
		rules["minlength"] = *cs.MinLength
	}
	if cs.MaxLength != nil {
		rules["maxlength"] = *cs.MaxLength
	}
	if len(cs.Allowed) > 0 {
		rules["allowed"] = cs.Allowed
	}
	if cs.Pattern != nil {
		rules["pattern"] = cs.Pattern.String()
	}
	if cs.Items != nil {
		rules["items"] = cs.Items.Rules()
	}
	if cs.Schema != nil {
		rules["schema"] = cs.Schema.Raw()
	}
	if cs.Check != "" {
		rules["check"] = cs.Check
	}
	return rules
}

// Raw returns the schema in its raw wire form.
func (s Schema) Raw() map[string]any {
	raw := make(map[string]any, len(s))
	for name, cs := range s {
		raw[name] = cs.Rules()
	}
	return raw
}

// MarshalJSON serializes the schema as its raw rule mapping.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw())
}

// UnmarshalJSON deserializes and compiles the schema from its raw rule
// mapping. Schemas referencing custom checks cannot be decoded this way;
// use Compile with WithChecks instead.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	compiled, err := Compile(raw)
	if err != nil {
		return err
	}

	*s = compiled
	return nil
}
