package schema

import (
	"fmt"
	"strconv"
)

// Options controls a single evaluation.
type Options struct {
	strict bool
}

// Option configures Evaluate.
type Option func(*Options)

// Strict records an "unknown field" error for every document field absent
// from the schema. The default policy is permissive: unknown fields are
// ignored.
func Strict() Option {
	return func(o *Options) {
		o.strict = true
	}
}

// Evaluate checks document against a compiled schema. It never fails for
// document content: every rule violation becomes an entry in the Result.
// Evaluation is deterministic and free of side effects; the same
// (schema, document) pair always yields the same Result.
func Evaluate(s Schema, document map[string]any, opts ...Option) *Result {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	res := &Result{}
	evalMapping(s, document, "", res, o)
	res.Valid = len(res.Errors) == 0
	return res
}

func evalMapping(s Schema, doc map[string]any, prefix string, res *Result, o *Options) {
	for name, cs := range s {
		path := joinPath(prefix, name)
		value, present := doc[name]

		// Absent and nil values are treated alike: a required field must be
		// present and non-empty.
		if !present || value == nil {
			if cs.Required {
				res.add(path, msgRequired)
			}
			continue
		}
		if cs.Required && value == "" {
			res.add(path, msgEmpty)
			continue
		}

		applyConstraints(cs, path, value, res, o)
	}

	if o.strict {
		for name := range doc {
			if _, ok := s[name]; !ok {
				res.add(joinPath(prefix, name), msgUnknownField)
			}
		}
	}
}

// applyConstraints runs the per-field rule pipeline. A type mismatch
// short-circuits: no further constraints are checked for that value.
func applyConstraints(cs *ConstraintSet, path string, value any, res *Result, o *Options) {
	if !matchesType(cs.Type, value) {
		res.add(path, fmt.Sprintf(msgType, cs.Type))
		return
	}

	if len(cs.Allowed) > 0 && !isAllowed(cs.Allowed, value) {
		res.add(path, fmt.Sprintf(msgAllowed, value))
	}

	if cs.Min != nil || cs.Max != nil {
		// Type check above guarantees a numeric value here.
		f, _ := asFloat(value)
		if cs.Min != nil && f < *cs.Min {
			res.add(path, fmt.Sprintf(msgMin, formatBound(*cs.Min)))
		}
		if cs.Max != nil && f > *cs.Max {
			res.add(path, fmt.Sprintf(msgMax, formatBound(*cs.Max)))
		}
	}

	if cs.MinLength != nil || cs.MaxLength != nil {
		if n, ok := length(value); ok {
			if cs.MinLength != nil && n < *cs.MinLength {
				res.add(path, fmt.Sprintf(msgMinLength, *cs.MinLength))
			}
			if cs.MaxLength != nil && n > *cs.MaxLength {
				res.add(path, fmt.Sprintf(msgMaxLength, *cs.MaxLength))
			}
		}
	}

	if cs.Pattern != nil {
		if str, ok := value.(string); ok && !cs.Pattern.MatchString(str) {
			res.add(path, fmt.Sprintf(msgPattern, cs.Pattern.String()))
		}
	}

	if cs.checkFn != nil {
		if err := cs.checkFn(path, value); err != nil {
			res.add(path, err.Error())
		}
	}

	switch {
	case cs.Type == TypeMapping && cs.Schema != nil:
		m, _ := asMapping(value)
		evalMapping(cs.Schema, m, path, res, o)
	case cs.Type == TypeList && cs.Items != nil:
		items, _ := asList(value)
		for i, elem := range items {
			elemPath := path + "." + strconv.Itoa(i)
			if elem == nil {
				res.add(elemPath, fmt.Sprintf(msgType, cs.Items.Type))
				continue
			}
			applyConstraints(cs.Items, elemPath, elem, res, o)
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func isAllowed(allowed []any, value any) bool {
	for _, candidate := range allowed {
		if equalValue(candidate, value) {
			return true
		}
	}
	return false
}
