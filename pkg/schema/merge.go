package schema

import "fmt"

// MergePolicy selects how Merge resolves fields defined in both schemas.
type MergePolicy int

const (
	// Override keeps the overlay's constraints for conflicting fields.
	Override MergePolicy = iota
	// FailOnConflict returns an error for any field defined in both schemas.
	FailOnConflict
)

// Merge composes two schemas field by field. Composition is explicit: there
// is no inheritance chain, the returned Schema stands on its own.
func Merge(base, overlay Schema, policy MergePolicy) (Schema, error) {
	merged := make(Schema, len(base)+len(overlay))
	for name, cs := range base {
		merged[name] = cs
	}
	for name, cs := range overlay {
		if _, exists := merged[name]; exists && policy == FailOnConflict {
			return nil, fmt.Errorf("merge conflict: field %q defined in both schemas", name)
		}
		merged[name] = cs
	}
	return merged, nil
}

// Extend returns base extended with overlay, overlay winning on conflicts.
func Extend(base, overlay Schema) Schema {
	merged, _ := Merge(base, overlay, Override)
	return merged
}
