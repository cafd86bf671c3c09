package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filecombiner/pkg/combine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, files map[string]string) (string, *Session, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	var out bytes.Buffer
	return dir, New(&out, combine.DefaultConfig(), combine.CollectOptions{}, nil), &out
}

func TestSessionFlow(t *testing.T) {
	dir, s, out := setup(t, map[string]string{"a.txt": "A", "b.txt": "B", "c.txt": "C"})
	a, b, c := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")
	output := filepath.Join(dir, "out.txt")

	script := strings.Join([]string{
		"add " + a + " " + b + " " + c,
		"add " + a,
		"up 3",
		"select 1",
		"down",
		"rm 3",
		"set separator none",
		"combine " + output,
		"quit",
		"add " + b,
	}, "\n")
	require.NoError(t, s.Run(strings.NewReader(script)))

	assert.Equal(t, []string{c, a}, s.Files().Paths())
	assert.Equal(t, combine.SeparatorNone, s.Config().Separator)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "CA", string(data))

	text := out.String()
	assert.Contains(t, text, "No files added yet.")
	assert.Contains(t, text, "3 file(s) queued.")
	assert.Contains(t, text, "1 duplicate(s) ignored.")
	assert.Contains(t, text, "Selected: 2")
	assert.Contains(t, text, "Files combined successfully! Saved to: "+output)
}

func TestSessionCombineEmpty(t *testing.T) {
	dir, s, out := setup(t, nil)
	output := filepath.Join(dir, "out.txt")

	s.Execute("combine " + output)

	assert.Contains(t, out.String(), "Error: "+combine.ErrEmptySelection.Error())
	assert.NoFileExists(t, output)
}

func TestSessionCombineFailureKeepsQueue(t *testing.T) {
	dir, s, out := setup(t, map[string]string{"a.txt": "A", "b.txt": "B"})
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")

	s.Execute("add " + a + " " + b)
	require.NoError(t, os.Remove(b))
	s.Execute("combine " + filepath.Join(dir, "out.txt"))

	assert.Contains(t, out.String(), "Error: input error: "+b)
	assert.Equal(t, []string{a, b}, s.Files().Paths())
}

func TestSessionErrors(t *testing.T) {
	dir, s, out := setup(t, map[string]string{"a.txt": "A"})
	s.Execute("add " + filepath.Join(dir, "a.txt"))
	out.Reset()

	testCases := []struct {
		line     string
		expected string
	}{
		{"rm 9", `Error: invalid position "9"`},
		{"up x", `Error: invalid position "x"`},
		{"bogus", `Error: unknown command "bogus"`},
		{"set encoding utf-16", `Error: configuration error: unknown encoding "utf-16"`},
		{"set skip-header maybe", `Error: skip-header expects true or false`},
		{"set colour red", `Error: unknown option "colour"`},
		{`add "unterminated`, "Error: unterminated quote"},
		{"add " + filepath.Join(dir, "missing.txt"), "Error: input error: "},
		{"add", "Error: add needs at least one path"},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			out.Reset()
			assert.False(t, s.Execute(tc.line))
			assert.Contains(t, out.String(), tc.expected)
			assert.Equal(t, 1, s.Files().Len())
		})
	}
}

func TestSessionMoveAtBoundaryIsNoop(t *testing.T) {
	dir, s, _ := setup(t, map[string]string{"a.txt": "A", "b.txt": "B"})
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")

	s.Execute("add " + a + " " + b)
	s.Execute("up 1")
	s.Execute("down 2")
	assert.Equal(t, []string{a, b}, s.Files().Paths())

	s.Execute("clear")
	assert.Equal(t, 0, s.Files().Len())
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(`add "my file.txt" other.csv  `)
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "my file.txt", "other.csv"}, args)

	args, err = splitArgs(`  `)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = splitArgs(`add 'single quoted.txt' say\"hi\".txt "a \"b\".txt"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "single quoted.txt", `say"hi".txt`, `a "b".txt`}, args)

	_, err = splitArgs(`add "open`)
	assert.Error(t, err)
}
