package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mover/internal/errors"
	"mover/pkg/testutils"
)

const validConfig = `{
  "rules": [
    {
      "pattern": "PHOTO_",
      "renames": [{"from": "PHOTO_", "to": "IMG_"}, {"from": "IMG_", "to": "pic-"}],
      "prefix": "2024-",
      "destination": "photos"
    },
    {
      "pattern": ".pdf",
      "suffix": "",
      "destination": "/srv/docs"
    }
  ]
}`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 2)

	photo := cfg.Rules[0]
	assert.Equal(t, "PHOTO_", photo.Pattern)
	assert.Equal(t, "photos", photo.Destination)
	assert.Equal(t, []RenameRule{{From: "PHOTO_", To: "IMG_"}, {From: "IMG_", To: "pic-"}}, photo.Renames)
	require.NotNil(t, photo.Prefix)
	assert.Equal(t, "2024-", photo.PrefixValue())
	assert.Nil(t, photo.Suffix)
	assert.Equal(t, "", photo.SuffixValue())

	pdf := cfg.Rules[1]
	assert.Empty(t, pdf.Renames)
	assert.Nil(t, pdf.Prefix)
	// Present but empty is kept distinct from absent
	require.NotNil(t, pdf.Suffix)
	assert.Equal(t, "", *pdf.Suffix)
	assert.Equal(t, "/srv/docs", pdf.Destination)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		param string
	}{
		{"invalid json", `{"rules": [`, ""},
		{"wrong shape", `{"rules": "photos"}`, ""},
		{"missing rules", `{}`, "rules"},
		{"null rules", `{"rules": null}`, "rules"},
		{"missing pattern", `{"rules": [{"destination": "d"}]}`, "rules[0].pattern"},
		{"missing destination", `{"rules": [{"pattern": "a"}, {"pattern": "b"}]}`, "rules[0].destination"},
		{"second rule missing destination", `{"rules": [{"pattern": "a", "destination": "d"}, {"pattern": "b"}]}`, "rules[1].destination"},
		{"empty destination", `{"rules": [{"pattern": "a", "destination": ""}]}`, "rules[0].destination"},
		{"rename missing from", `{"rules": [{"pattern": "a", "destination": "d", "renames": [{"to": "x"}]}]}`, "rules[0].renames[0].from"},
		{"rename missing to", `{"rules": [{"pattern": "a", "destination": "d", "renames": [{"from": "x", "to": "y"}, {"from": "z"}]}]}`, "rules[0].renames[1].to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.IsConfigMalformed(err), "got %v", err)
			assert.True(t, errors.IsFatal(err))

			if tt.param != "" {
				var configErr *errors.ConfigError
				require.True(t, errors.As(err, &configErr))
				assert.Equal(t, tt.param, configErr.Param())
				assert.Contains(t, err.Error(), tt.param)
			}
		})
	}
}

func TestParseLenientCases(t *testing.T) {
	t.Run("empty rule list", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"rules": []}`))
		require.NoError(t, err)
		assert.Empty(t, cfg.Rules)
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"version": 2, "rules": [{"pattern": "a", "destination": "d", "color": "red"}]}`))
		require.NoError(t, err)
		require.Len(t, cfg.Rules, 1)
		assert.Equal(t, "a", cfg.Rules[0].Pattern)
	})

	t.Run("empty pattern accepted", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"rules": [{"pattern": "", "destination": "all"}]}`))
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Rules[0].Pattern)
	})

	t.Run("null renames treated as none", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"rules": [{"pattern": "a", "destination": "d", "renames": null}]}`))
		require.NoError(t, err)
		assert.Empty(t, cfg.Rules[0].Renames)
	})
}

func TestLoadFileErrors(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		path := filepath.Join(dir, "absent.json")
		_, err := LoadFile(fs, path)
		require.Error(t, err)
		assert.True(t, errors.IsConfigNotFound(err))
		assert.Contains(t, err.Error(), "configuration file '"+path+"' not found")
	})

	t.Run("path is a directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0755))
		_, err := LoadFile(fs, sub)
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.ConfigUnreadable), "got %v", err)
	})

	t.Run("malformed content", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
		_, err := LoadFile(fs, path)
		require.Error(t, err)
		assert.True(t, errors.IsConfigMalformed(err))
	})
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteConfig(t, dir, validConfig)
	if wd, err := os.Getwd(); err != nil {
		t.Fatal(err)
	} else {
		t.Cleanup(func() { _ = os.Chdir(wd) })
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(afero.NewOsFs())
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 2)
}

func TestLoadMissingFromWorkingDirectory(t *testing.T) {
	_, err := Load(afero.NewMemMapFs())
	require.Error(t, err)
	assert.True(t, errors.IsConfigNotFound(err))
	assert.Contains(t, err.Error(), "configuration file '.mover.json' not found in current directory")
}

func TestLoadMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, FileName, []byte(`{"rules": [{"pattern": "x", "destination": "y"}]}`), 0644))

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "y", cfg.Rules[0].Destination)
}

func TestValidate(t *testing.T) {
	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())

	cfg := &Config{Rules: []FileRule{{Pattern: "a", Destination: "d"}, {Pattern: "b"}}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules[1].destination")

	assert.NoError(t, (&Config{}).Validate())
}
