// Package ignore implements gitignore-style exclusion lists used when
// directories and globs are expanded into input files.
package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// FileName is the per-directory ignore file picked up during expansion.
const FileName = ".combineignore"

// Pattern is one compiled ignore rule.
type Pattern struct {
	Glob    string // doublestar pattern matched against slash-separated relative paths.
	Negate  bool   // Rule started with '!' and re-includes matches.
	DirOnly bool   // Rule ended with '/' and only matches directories.
	Line    string // Original pattern line.
	LineNo  int    // Line number in the source (1-based).
	Source  string // File the rule came from, empty for inline rules.
}

// Matcher is an ordered collection of patterns. The last matching pattern
// decides whether a path is ignored.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load builds a Matcher from the given ignore files. Files that do not
// exist are skipped.
func Load(logger *zap.Logger, files ...string) (*Matcher, error) {
	m := New(logger)
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := m.CompileFile(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

// CompileLines adds inline pattern lines, such as command-line excludes.
func (m *Matcher) CompileLines(lines ...string) {
	for i, line := range lines {
		m.add(line, i+1, "")
	}
}

// CompileFile adds every pattern in the file at p.
func (m *Matcher) CompileFile(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		m.add(scanner.Text(), lineNo, p)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	m.logger.Debug("Loaded ignore file", zap.String("file", p), zap.Int("totalPatterns", len(m.patterns)))
	return nil
}

// Clone returns a copy that can be extended without affecting m.
func (m *Matcher) Clone() *Matcher {
	c := &Matcher{logger: m.logger, patterns: make([]*Pattern, len(m.patterns))}
	copy(c.patterns, m.patterns)
	return c
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match reports whether rel, a path relative to the expansion root, is
// ignored.
func (m *Matcher) Match(rel string, isDir bool) bool {
	ignored, _ := m.MatchWithPattern(rel, isDir)
	return ignored
}

// MatchWithPattern is Match that also returns the deciding pattern.
func (m *Matcher) MatchWithPattern(rel string, isDir bool) (bool, *Pattern) {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	if rel == "" || rel == "." {
		return false, nil
	}
	for i := len(m.patterns) - 1; i >= 0; i-- {
		p := m.patterns[i]
		if p.matches(rel, isDir) {
			return !p.Negate, p
		}
	}
	return false, nil
}

func (m *Matcher) add(line string, lineNo int, source string) {
	p, ok := compile(line)
	if !ok {
		return
	}
	if !doublestar.ValidatePattern(p.Glob) {
		m.logger.Warn("Skipping invalid ignore pattern",
			zap.String("pattern", line),
			zap.String("source", source),
			zap.Int("line", lineNo))
		return
	}
	p.LineNo = lineNo
	p.Source = source
	m.patterns = append(m.patterns, p)
}

func compile(line string) (*Pattern, bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	p := &Pattern{Line: line}
	pattern := line
	switch {
	case strings.HasPrefix(pattern, `\#`), strings.HasPrefix(pattern, `\!`):
		pattern = pattern[1:]
	case strings.HasPrefix(pattern, "!"):
		p.Negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		p.DirOnly = true
		pattern = strings.TrimRight(pattern, "/")
	}

	// A slash anywhere but the end anchors the rule to the root.
	anchored := strings.Contains(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return nil, false
	}
	if !anchored && !strings.HasPrefix(pattern, "**/") {
		pattern = "**/" + pattern
	}
	p.Glob = pattern
	return p, true
}

// matches checks rel and each of its parent directories.
func (p *Pattern) matches(rel string, isDir bool) bool {
	if !p.DirOnly || isDir {
		if ok, _ := doublestar.Match(p.Glob, rel); ok {
			return true
		}
	}
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if ok, _ := doublestar.Match(p.Glob, dir); ok {
			return true
		}
	}
	return false
}
