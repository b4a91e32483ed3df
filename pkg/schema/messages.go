package schema

import "strconv"

// Error message templates used by Evaluate. Kept in one place so API
// consumers can rely on stable wording.
const (
	msgRequired     = "required"
	msgEmpty        = "empty values not allowed"
	msgType         = "must be of %s type"
	msgMin          = "must be >= %s"
	msgMax          = "must be <= %s"
	msgMinLength    = "length must be >= %d"
	msgMaxLength    = "length must be <= %d"
	msgAllowed      = "unallowed value %v"
	msgPattern      = "must match pattern %q"
	msgUnknownField = "unknown field"
)

// formatBound renders a numeric bound without a trailing ".0" so that
// integer bounds read naturally ("must be >= 0").
func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
