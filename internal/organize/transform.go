package organize

import (
	"path/filepath"
	"strings"

	"mover/internal/config"
	"mover/pkg/types"
)

// Step is one effective change to a filename, reported as an event of Kind
type Step struct {
	Kind types.EventKind
	From string
	To   string
}

// ApplyRenames folds renames over name. Each rename replaces every occurrence
// of From in the current name; a rename whose From is empty or absent from
// the name is skipped and produces no step.
func ApplyRenames(name string, renames []config.RenameRule) (string, []Step) {
	var steps []Step
	for _, r := range renames {
		if r.From == "" || !strings.Contains(name, r.From) {
			continue
		}
		renamed := strings.ReplaceAll(name, r.From, r.To)
		steps = append(steps, Step{Kind: types.EventRename, From: name, To: renamed})
		name = renamed
	}
	return name, steps
}

// ApplyAffixes prepends the rule's prefix and inserts its suffix before the
// extension. A name without an extension, or a dotfile such as ".env", gets
// the suffix appended. Empty affixes are ignored.
func ApplyAffixes(name string, rule config.FileRule) (string, []Step) {
	// The extension is taken before prefixing so a prefixed dotfile keeps
	// being treated as extensionless.
	ext := filepath.Ext(name)
	if ext == name {
		ext = ""
	}

	var steps []Step
	if prefix := rule.PrefixValue(); prefix != "" {
		prefixed := prefix + name
		steps = append(steps, Step{Kind: types.EventPrefix, From: name, To: prefixed})
		name = prefixed
	}
	if suffix := rule.SuffixValue(); suffix != "" {
		suffixed := strings.TrimSuffix(name, ext) + suffix + ext
		steps = append(steps, Step{Kind: types.EventSuffix, From: name, To: suffixed})
		name = suffixed
	}
	return name, steps
}

// Transform computes the final filename for a file matched by rule: renames
// first, then affixes.
func Transform(name string, rule config.FileRule) (string, []Step) {
	renamed, steps := ApplyRenames(name, rule.Renames)
	final, affixSteps := ApplyAffixes(renamed, rule)
	return final, append(steps, affixSteps...)
}
