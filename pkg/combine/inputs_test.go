package combine

import (
	"path/filepath"
	"strings"
	"testing"

	"filecombiner/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data/b.csv", "b\n")
	writeFile(t, dir, "data/a.csv", "a\n")
	writeFile(t, dir, "data/notes.md", "skip\n")
	writeFile(t, dir, "data/blob.txt", "\x00\x01\x02")
	writeFile(t, dir, "data/old/c.csv", "c\n")
	writeFile(t, dir, "data/tmp/d.csv", "d\n")
	writeFile(t, dir, "data/"+ignore.FileName, "tmp/\n")
	explicit := writeFile(t, dir, "explicit.md", "kept\n")

	t.Run("Directory walk applies filters", func(t *testing.T) {
		files, err := CollectInputs([]string{filepath.Join(dir, "data")}, CollectOptions{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "data", "a.csv"),
			filepath.Join(dir, "data", "b.csv"),
			filepath.Join(dir, "data", "old", "c.csv"),
		}, files)
	})

	t.Run("Exclude patterns", func(t *testing.T) {
		gi := ignore.New(nil)
		gi.CompileLines("old/")
		files, err := CollectInputs([]string{filepath.Join(dir, "data")}, CollectOptions{Ignore: gi}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "data", "a.csv"),
			filepath.Join(dir, "data", "b.csv"),
		}, files)
	})

	t.Run("Explicit files keep argument order and skip filters", func(t *testing.T) {
		b := filepath.Join(dir, "data", "b.csv")
		files, err := CollectInputs([]string{b, explicit, b}, CollectOptions{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{b, explicit}, files)
	})

	t.Run("Glob", func(t *testing.T) {
		files, err := CollectInputs([]string{filepath.Join(dir, "data", "**", "*.csv")}, CollectOptions{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "data", "a.csv"),
			filepath.Join(dir, "data", "b.csv"),
			filepath.Join(dir, "data", "old", "c.csv"),
			filepath.Join(dir, "data", "tmp", "d.csv"),
		}, files)
	})

	t.Run("Extensions and sort by name", func(t *testing.T) {
		files, err := CollectInputs(
			[]string{filepath.Join(dir, "data", "b.csv"), filepath.Join(dir, "data")},
			CollectOptions{Extensions: []string{"md, csv"}, SortByName: true},
			nil,
		)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "data", "a.csv"),
			filepath.Join(dir, "data", "b.csv"),
			filepath.Join(dir, "data", "old", "c.csv"),
			filepath.Join(dir, "data", "notes.md"),
		}, files)
	})

	t.Run("Size limit", func(t *testing.T) {
		big := writeFile(t, t.TempDir(), "big.txt", strings.Repeat("x", 2048))
		files, err := CollectInputs([]string{filepath.Dir(big)}, CollectOptions{MaxFileSizeKB: 1}, nil)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("Skip paths", func(t *testing.T) {
		skipDir := t.TempDir()
		keep := writeFile(t, skipDir, "a.txt", "a")
		out := writeFile(t, skipDir, "combined.txt", "old")

		files, err := CollectInputs([]string{skipDir}, CollectOptions{Skip: []string{out}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{keep}, files)

		files, err = CollectInputs([]string{filepath.Join(skipDir, "*.txt")}, CollectOptions{Skip: []string{out}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{keep}, files)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := CollectInputs([]string{filepath.Join(dir, "nope.txt")}, CollectOptions{}, nil)
		require.Error(t, err)
		assert.Equal(t, InputError, KindOf(err))
	})
}

