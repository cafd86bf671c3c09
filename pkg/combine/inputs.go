// File: pkg/combine/inputs.go
package combine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"filecombiner/pkg/filelist"
	"filecombiner/pkg/ignore"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// DefaultExtensions are the file types picked up when a directory or glob
// is expanded.
var DefaultExtensions = []string{".txt", ".csv"}

// CollectOptions controls how command-line arguments are expanded into
// input files.
type CollectOptions struct {
	Extensions    []string        // Extensions kept during expansion; empty means DefaultExtensions.
	Ignore        *ignore.Matcher // Patterns excluded during expansion; may be nil.
	MaxFileSizeKB int             // Larger files are skipped during expansion; 0 disables the limit.
	SortByName    bool            // Sort the result by base name instead of argument order.
	Verbose       bool            // Log every skipped file.
	Skip          []string        // Paths never picked up by expansion, such as the output file.
}

// CollectInputs expands args into an ordered list of input files.
//
// A plain file argument is always kept, since the user named it. A
// directory is walked and a doublestar glob is expanded; files found that
// way must have one of the wanted extensions, must not match an ignore
// pattern, must fit the size limit and must not look binary. A missing
// path is an InputError.
func CollectInputs(args []string, opts CollectOptions, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &collector{
		opts:   opts,
		exts:   normalizeExtensions(opts.Extensions),
		skip:   make(map[string]struct{}, len(opts.Skip)),
		logger: logger,
	}
	for _, p := range opts.Skip {
		if abs, err := filepath.Abs(p); err == nil {
			c.skip[abs] = struct{}{}
		}
	}
	if c.opts.Ignore == nil {
		c.opts.Ignore = ignore.New(logger)
	}
	logger.Debug("Starting input collection", zap.Int("argCount", len(args)))

	for _, arg := range args {
		if err := c.collectArg(arg); err != nil {
			return nil, err
		}
	}

	files := filelist.New(c.files...).Paths()
	if opts.SortByName {
		sort.SliceStable(files, func(i, j int) bool {
			return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
		})
	}
	logger.Debug("Completed input collection", zap.Int("files", len(files)))
	return files, nil
}

type collector struct {
	opts   CollectOptions
	exts   map[string]struct{}
	skip   map[string]struct{}
	files  []string
	logger *zap.Logger
}

func (c *collector) collectArg(arg string) error {
	if hasMeta(arg) {
		return c.collectGlob(arg)
	}

	path := filepath.Clean(arg)
	info, err := os.Stat(path)
	if err != nil {
		return inputErr(path, err)
	}
	if info.IsDir() {
		return c.collectDir(path)
	}
	c.files = append(c.files, path)
	return nil
}

func (c *collector) collectGlob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return &Error{Kind: InputError, Path: pattern, Err: fmt.Errorf("invalid glob: %w", err)}
	}
	if len(matches) == 0 {
		c.logger.Warn("Glob matched no files", zap.String("pattern", pattern))
		return nil
	}
	sort.Strings(matches)

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return inputErr(m, err)
		}
		if info.IsDir() {
			if err := c.collectDir(m); err != nil {
				return err
			}
			continue
		}
		rel, err := filepath.Rel(base, m)
		if err != nil {
			rel = filepath.Base(m)
		}
		if c.keep(m, rel, info, c.opts.Ignore) {
			c.files = append(c.files, m)
		}
	}
	return nil
}

func (c *collector) collectDir(root string) error {
	gi := c.opts.Ignore.Clone()
	if err := gi.CompileFile(filepath.Join(root, ignore.FileName)); err != nil && !os.IsNotExist(err) {
		c.logger.Warn("Failed to load ignore file", zap.String("dir", root), zap.Error(err))
	}
	c.logger.Debug("Processing directory", zap.String("dir", root), zap.Int("ignorePatterns", gi.Len()))

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return inputErr(path, err)
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if rel != "." && gi.Match(rel, true) {
				c.skipped(path, "ignored directory")
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ignore.FileName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return inputErr(path, err)
		}
		if c.keep(path, rel, info, gi) {
			c.files = append(c.files, path)
		}
		return nil
	})
}

// keep applies the expansion filters to a discovered file.
func (c *collector) keep(path, rel string, info fs.FileInfo, gi *ignore.Matcher) bool {
	if !info.Mode().IsRegular() {
		c.skipped(path, "not a regular file")
		return false
	}
	if abs, err := filepath.Abs(path); err == nil {
		if _, ok := c.skip[abs]; ok {
			c.skipped(path, "excluded path")
			return false
		}
	}
	if _, ok := c.exts[filelist.Extension(path)]; !ok {
		c.skipped(path, "extension not included")
		return false
	}
	if ignored, p := gi.MatchWithPattern(rel, false); ignored {
		if c.opts.Verbose {
			c.logger.Debug("File matches ignore pattern", zap.String("file", path), zap.String("pattern", p.Line))
		}
		return false
	}
	if c.opts.MaxFileSizeKB > 0 && info.Size() > int64(c.opts.MaxFileSizeKB)*1024 {
		if c.opts.Verbose {
			c.logger.Debug("File exceeds size limit", zap.String("file", path), zap.Int64("sizeBytes", info.Size()), zap.Int("maxSizeKB", c.opts.MaxFileSizeKB))
		}
		return false
	}
	isBinary, err := isBinaryFile(path)
	if err != nil {
		c.logger.Warn("Failed to check if file is binary", zap.String("file", path), zap.Error(err))
		return false
	}
	if isBinary {
		c.logger.Warn("Skipping binary file", zap.String("file", path))
		return false
	}
	return true
}

func (c *collector) skipped(path, reason string) {
	if c.opts.Verbose {
		c.logger.Debug("Skipping path", zap.String("path", path), zap.String("reason", reason))
	}
}

func normalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		for _, e := range strings.Split(ext, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			out[e] = struct{}{}
		}
	}
	return out
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
