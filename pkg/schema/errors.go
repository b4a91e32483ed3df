package schema

import "fmt"

// ConfigError reports a malformed schema. It is returned by Compile before
// any document is evaluated; a schema that produced one must not be used.
type ConfigError struct {
	Field  string // schema field the constraint belongs to
	Key    string // offending constraint key, if any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("schema field %q: constraint %q: %s", e.Field, e.Key, e.Reason)
	}
	return fmt.Sprintf("schema field %q: %s", e.Field, e.Reason)
}

func configErr(field, key, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Key: key, Reason: fmt.Sprintf(format, args...)}
}
