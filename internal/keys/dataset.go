package keys

import (
	"fmt"
	"strings"
)

// Latest is the rolling pointer to the newest published snapshot. It is
// rewritten on every publish; versioned keys never are.
const Latest = "zones/latest.json"

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Dataset returns the canonical bucket key for a dataset snapshot version.
func Dataset(version string) string {
	return fmt.Sprintf("zones/v%s.json", sanitizeKey(version))
}
