package organize

import (
	"strings"

	"mover/internal/config"
)

// MatchRule returns the index of the first rule whose pattern occurs in name.
// Matching is case-sensitive; an empty pattern matches every name.
func MatchRule(rules []config.FileRule, name string) (int, bool) {
	for i, rule := range rules {
		if strings.Contains(name, rule.Pattern) {
			return i, true
		}
	}
	return -1, false
}
