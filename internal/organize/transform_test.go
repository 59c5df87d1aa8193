package organize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mover/internal/config"
	"mover/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestMatchRule(t *testing.T) {
	rules := []config.FileRule{
		{Pattern: "IMG", Destination: "photos"},
		{Pattern: ".jpg", Destination: "images"},
		{Pattern: "", Destination: "rest"},
	}

	tests := []struct {
		name      string
		file      string
		wantIndex int
		wantOK    bool
	}{
		{"first rule wins over later matches", "IMG_001.jpg", 0, true},
		{"second rule", "holiday.jpg", 1, true},
		{"case sensitive", "img_001.JPG", 2, true},
		{"empty pattern catches the rest", "notes.txt", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := MatchRule(rules, tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, index)
		})
	}

	index, ok := MatchRule(rules[:2], "notes.txt")
	assert.False(t, ok)
	assert.Equal(t, -1, index)

	_, ok = MatchRule(nil, "anything")
	assert.False(t, ok)
}

func TestApplyRenames(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		renames []config.RenameRule
		want    string
		steps   []Step
	}{
		{
			name:    "single replacement",
			input:   "data_old.txt",
			renames: []config.RenameRule{{From: "old", To: "new"}},
			want:    "data_new.txt",
			steps:   []Step{{Kind: types.EventRename, From: "data_old.txt", To: "data_new.txt"}},
		},
		{
			name:    "later steps see earlier output",
			input:   "cat",
			renames: []config.RenameRule{{From: "a", To: "b"}, {From: "b", To: "c"}},
			want:    "cct",
			steps: []Step{
				{Kind: types.EventRename, From: "cat", To: "cbt"},
				{Kind: types.EventRename, From: "cbt", To: "cct"},
			},
		},
		{
			name:    "replaces every occurrence",
			input:   "a-a-a.txt",
			renames: []config.RenameRule{{From: "a", To: "bb"}},
			want:    "bb-bb-bb.txt",
			steps:   []Step{{Kind: types.EventRename, From: "a-a-a.txt", To: "bb-bb-bb.txt"}},
		},
		{
			name:    "absent from is a no-op",
			input:   "report.pdf",
			renames: []config.RenameRule{{From: "xyz", To: "abc"}},
			want:    "report.pdf",
		},
		{
			name:    "empty from is a no-op",
			input:   "report.pdf",
			renames: []config.RenameRule{{From: "", To: "abc"}},
			want:    "report.pdf",
		},
		{
			name:  "no renames",
			input: "report.pdf",
			want:  "report.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, steps := ApplyRenames(tt.input, tt.renames)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.steps, steps)
		})
	}
}

func TestApplyAffixes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix *string
		suffix *string
		want   string
		kinds  []types.EventKind
	}{
		{"absent affixes leave the name alone", "report.pdf", nil, nil, "report.pdf", nil},
		{"empty affixes leave the name alone", "report.pdf", strPtr(""), strPtr(""), "report.pdf", nil},
		{"prefix", "report.pdf", strPtr("2024-"), nil, "2024-report.pdf", []types.EventKind{types.EventPrefix}},
		{"suffix before extension", "report.pdf", nil, strPtr("_v2"), "report_v2.pdf", []types.EventKind{types.EventSuffix}},
		{"suffix before last extension only", "backup.tar.gz", nil, strPtr("_old"), "backup.tar_old.gz", []types.EventKind{types.EventSuffix}},
		{"suffix appended without extension", "Makefile", nil, strPtr("_v2"), "Makefile_v2", []types.EventKind{types.EventSuffix}},
		{"suffix appended to dotfile", ".env", nil, strPtr(".bak"), ".env.bak", []types.EventKind{types.EventSuffix}},
		{"prefixed dotfile stays extensionless", ".env", strPtr("old"), strPtr("_1"), "old.env_1", []types.EventKind{types.EventPrefix, types.EventSuffix}},
		{"both", "photo.jpg", strPtr("x-"), strPtr("-y"), "x-photo-y.jpg", []types.EventKind{types.EventPrefix, types.EventSuffix}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := config.FileRule{Prefix: tt.prefix, Suffix: tt.suffix, Destination: "d"}
			got, steps := ApplyAffixes(tt.input, rule)
			assert.Equal(t, tt.want, got)

			var kinds []types.EventKind
			for _, s := range steps {
				kinds = append(kinds, s.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
			if len(steps) > 0 {
				assert.Equal(t, tt.input, steps[0].From)
				assert.Equal(t, tt.want, steps[len(steps)-1].To)
			}
		})
	}
}

func TestTransformAppliesRenamesBeforeAffixes(t *testing.T) {
	rule := config.FileRule{
		Pattern:     "IMG",
		Renames:     []config.RenameRule{{From: "IMG", To: "PHOTO"}},
		Prefix:      strPtr("2024-"),
		Suffix:      strPtr("_edit"),
		Destination: "photos",
	}

	got, steps := Transform("IMG_001.jpg", rule)
	assert.Equal(t, "2024-PHOTO_001_edit.jpg", got)
	assert.Equal(t, []Step{
		{Kind: types.EventRename, From: "IMG_001.jpg", To: "PHOTO_001.jpg"},
		{Kind: types.EventPrefix, From: "PHOTO_001.jpg", To: "2024-PHOTO_001.jpg"},
		{Kind: types.EventSuffix, From: "2024-PHOTO_001.jpg", To: "2024-PHOTO_001_edit.jpg"},
	}, steps)

	// Without affixes the result is the rename fold alone
	rule.Prefix, rule.Suffix = nil, nil
	got, steps = Transform("IMG_001.jpg", rule)
	assert.Equal(t, "PHOTO_001.jpg", got)
	assert.Len(t, steps, 1)
}
