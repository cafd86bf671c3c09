package config

import (
	"os"
	"path/filepath"
	"testing"

	"filecombiner/pkg/combine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cc, err := Default().CombineConfig()
	require.NoError(t, err)
	assert.Equal(t, combine.DefaultConfig(), cc)
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected combine.Config
		exclude  []string
		maxKB    int
	}{
		{
			name:     "Empty file keeps defaults",
			content:  "",
			expected: combine.DefaultConfig(),
			exclude:  []string{},
		},
		{
			name: "Overrides",
			content: `
separator = "blank line"
encoding = "latin-1"
skip_csv_header = false
atomic = true
exclude_patterns = ["*.bak", "tmp/"]
max_file_size_kb = 512
`,
			expected: combine.Config{
				Separator:               combine.SeparatorBlankLine,
				SkipCSVHeaderAfterFirst: false,
				Encoding:                combine.EncodingLatin1,
				Atomic:                  true,
			},
			exclude: []string{"*.bak", "tmp/"},
			maxKB:   512,
		},
		{
			name:    "Partial file and unknown keys",
			content: "encoding = \"ascii\"\nunknown_key = 1\n",
			expected: combine.Config{
				Separator:               combine.SeparatorNewline,
				SkipCSVHeaderAfterFirst: true,
				Encoding:                combine.EncodingASCII,
			},
			exclude: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.content), nil)
			require.NoError(t, err)

			cc, err := cfg.CombineConfig()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cc)
			assert.Equal(t, tc.exclude, cfg.ExcludePatterns)
			assert.Equal(t, tc.maxKB, *cfg.MaxFileSizeKB)
			assert.Equal(t, []string{".txt", ".csv"}, cfg.Extensions)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("Missing custom file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
		assert.Error(t, err)
	})

	t.Run("Malformed TOML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "separator = "), nil)
		assert.Error(t, err)
	})

	t.Run("Unknown encoding", func(t *testing.T) {
		_, err := Load(writeConfig(t, `encoding = "utf-16"`), nil)
		require.Error(t, err)
		assert.Equal(t, combine.ConfigurationError, combine.KindOf(err))
	})
}

func TestLoadDefaultLocationMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
