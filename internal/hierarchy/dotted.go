package hierarchy

import "strings"

// FormatDottedID converts a stored three-segment identifier
// "{area}.{phase}.{parcel}" to its display form "{area}.{phase}{parcel}":
// the phase and parcel segments are concatenated without a separating dot.
// Identifiers with any other segment count pass through unchanged, which
// makes the function idempotent.
func FormatDottedID(id string) string {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return id
	}
	return parts[0] + "." + parts[1] + parts[2]
}
