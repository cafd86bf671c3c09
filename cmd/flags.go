package cmd

import (
	"fmt"
	"strings"

	"filecombiner/pkg/combine"
	"filecombiner/pkg/config"
	"filecombiner/pkg/ignore"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// engineFlags are the combine options shared by every command that merges.
type engineFlags struct {
	separator  string
	encoding   string
	skipHeader bool
	atomic     bool
}

func (f *engineFlags) register(fs *pflag.FlagSet) {
	def := combine.DefaultConfig()
	fs.StringVar(&f.separator, "separator", def.Separator.String(),
		fmt.Sprintf("Separator between text files: %s", strings.Join(combine.SeparatorNames(), ", ")))
	fs.StringVar(&f.encoding, "encoding", def.Encoding.String(),
		fmt.Sprintf("Encoding for inputs and output: %s", strings.Join(combine.EncodingNames(), ", ")))
	fs.BoolVar(&f.skipHeader, "skip-header", def.SkipCSVHeaderAfterFirst, "Skip the header row of every CSV file after the first")
	fs.BoolVar(&f.atomic, "atomic", def.Atomic, "Write to a temporary file and rename it into place on success")
}

// resolve starts from the config file and applies the flags the user set.
func (f *engineFlags) resolve(fs *pflag.FlagSet, cfg config.Config) (combine.Config, error) {
	if fs.Changed("separator") {
		cfg.Separator = &f.separator
	}
	if fs.Changed("encoding") {
		cfg.Encoding = &f.encoding
	}
	if fs.Changed("skip-header") {
		cfg.SkipCSVHeader = &f.skipHeader
	}
	if fs.Changed("atomic") {
		cfg.Atomic = &f.atomic
	}
	return cfg.CombineConfig()
}

// selectionFlags control how arguments are expanded into input files.
type selectionFlags struct {
	exclude    []string
	extensions []string
	maxSizeKB  int
	sortByName bool
	verbose    bool
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&f.exclude, "exclude", "x", nil, "Ignore patterns applied when expanding directories and globs")
	fs.StringSliceVarP(&f.extensions, "ext", "e", nil, "Extensions picked up from directories and globs (default .txt,.csv)")
	fs.IntVar(&f.maxSizeKB, "max-size-kb", 0, "Skip expanded files larger than this many KB (0 = no limit)")
	fs.BoolVar(&f.sortByName, "sort-by-name", false, "Order inputs by file name instead of argument order")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log every skipped file")
}

func (f *selectionFlags) resolve(fs *pflag.FlagSet, cfg config.Config, logger *zap.Logger) combine.CollectOptions {
	gi := ignore.New(logger)
	gi.CompileLines(cfg.ExcludePatterns...)
	gi.CompileLines(f.exclude...)

	opts := combine.CollectOptions{
		Extensions:    cfg.Extensions,
		Ignore:        gi,
		MaxFileSizeKB: *cfg.MaxFileSizeKB,
		SortByName:    f.sortByName,
		Verbose:       f.verbose,
	}
	if fs.Changed("ext") {
		opts.Extensions = f.extensions
	}
	if fs.Changed("max-size-kb") {
		opts.MaxFileSizeKB = f.maxSizeKB
	}
	return opts
}

// collectArgs expands args into input files. Paths in skip, typically the
// output file, are left out of directory and glob expansion.
func collectArgs(cmd *cobra.Command, sel *selectionFlags, args []string, skip ...string) ([]string, error) {
	opts := sel.resolve(cmd.Flags(), appConfig, logger)
	opts.Skip = skip
	files, err := combine.CollectInputs(args, opts, logger)
	if err != nil {
		logger.Error("Failed to collect input files", zap.Error(err))
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	return files, nil
}
