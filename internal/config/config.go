package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"

	serr "mover/internal/errors"
)

// FileName is the rule file looked up in the working directory. It is never
// treated as a candidate for organizing.
const FileName = ".mover.json"

// RenameRule replaces every occurrence of From with To in a filename.
type RenameRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FileRule selects files whose name contains Pattern, renames them and moves
// them into Destination.
type FileRule struct {
	Pattern     string       `json:"pattern"`           // Case-sensitive substring of the filename
	Renames     []RenameRule `json:"renames,omitempty"` // Applied in order, each seeing the previous output
	Prefix      *string      `json:"prefix,omitempty"`  // Prepended after renames
	Suffix      *string      `json:"suffix,omitempty"`  // Inserted before the extension after renames
	Destination string       `json:"destination"`       // Target directory, relative to the scanned directory unless absolute
}

// PrefixValue returns the prefix or "" when absent
func (r FileRule) PrefixValue() string {
	if r.Prefix == nil {
		return ""
	}
	return *r.Prefix
}

// SuffixValue returns the suffix or "" when absent
func (r FileRule) SuffixValue() string {
	if r.Suffix == nil {
		return ""
	}
	return *r.Suffix
}

// Config is the parsed rule file. Rule order is match priority.
type Config struct {
	Rules []FileRule `json:"rules"`
}

// The raw shapes keep pointers so that absent fields can be told apart from
// empty ones.
type rawConfig struct {
	Rules *[]rawRule `json:"rules"`
}

type rawRule struct {
	Pattern     *string     `json:"pattern"`
	Renames     []rawRename `json:"renames"`
	Prefix      *string     `json:"prefix"`
	Suffix      *string     `json:"suffix"`
	Destination *string     `json:"destination"`
}

type rawRename struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// Load reads FileName from the current working directory.
func Load(fs afero.Fs) (*Config, error) {
	return LoadFile(fs, FileName)
}

// LoadFile reads and parses the rule file at path.
// A missing file, an unreadable file and malformed content produce errors of
// kind ConfigNotFound, ConfigUnreadable and ConfigMalformed respectively.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			msg := fmt.Sprintf("configuration file '%s' not found", path)
			if path == FileName {
				msg += " in current directory"
			}
			return nil, serr.NewConfigError(msg, "", serr.ConfigNotFound, err)
		}
		return nil, serr.NewConfigError("failed to read config file", path, serr.ConfigUnreadable, err)
	}

	return Parse(data)
}

// Parse decodes rule file content and checks required fields.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, serr.NewConfigError("failed to parse config file", "", serr.ConfigMalformed, err)
	}
	if raw.Rules == nil {
		return nil, serr.NewConfigError("missing required field", "rules", serr.ConfigMalformed, nil)
	}

	cfg := &Config{Rules: make([]FileRule, 0, len(*raw.Rules))}
	for i, r := range *raw.Rules {
		rule, err := r.toRule(i)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r rawRule) toRule(index int) (FileRule, error) {
	missing := func(field string) error {
		return serr.NewConfigError("missing required field", fmt.Sprintf("rules[%d].%s", index, field), serr.ConfigMalformed, nil)
	}
	if r.Pattern == nil {
		return FileRule{}, missing("pattern")
	}
	if r.Destination == nil {
		return FileRule{}, missing("destination")
	}

	rule := FileRule{
		Pattern:     *r.Pattern,
		Prefix:      r.Prefix,
		Suffix:      r.Suffix,
		Destination: *r.Destination,
	}
	for j, rn := range r.Renames {
		if rn.From == nil {
			return FileRule{}, missing(fmt.Sprintf("renames[%d].from", j))
		}
		if rn.To == nil {
			return FileRule{}, missing(fmt.Sprintf("renames[%d].to", j))
		}
		rule.Renames = append(rule.Renames, RenameRule{From: *rn.From, To: *rn.To})
	}
	return rule, nil
}

// Validate checks the invariants that parsing alone cannot express.
func (c *Config) Validate() error {
	if c == nil {
		return serr.NewConfigError("nil config", "", serr.ConfigMalformed, nil)
	}
	for i, rule := range c.Rules {
		if rule.Destination == "" {
			return serr.NewConfigError("destination must not be empty", fmt.Sprintf("rules[%d].destination", i), serr.ConfigMalformed, nil)
		}
	}
	return nil
}
