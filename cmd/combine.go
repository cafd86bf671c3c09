package cmd

import (
	"errors"
	"fmt"
	"os"

	"filecombiner/pkg/combine"
	"filecombiner/pkg/filelist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCombineCmd() *cobra.Command {
	var (
		engine combineEngineFlags
		sel    selectionFlags
	)

	cmd := &cobra.Command{
		Use:   "combine [paths...]",
		Short: "Merge files into a single output file",
		Long: `Merge the given files, directories or globs, in order, into one output file.

The merge mode is chosen by majority extension: CSV when there are more .csv
than .txt inputs, text otherwise. Without --output the result is written to
combined.csv or combined.txt.`,
		Example: `  filecombiner combine part1.txt part2.txt -o all.txt --separator filename
  filecombiner combine 'exports/**/*.csv' --sort-by-name -o merged.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, &engine, &sel, args)
		},
	}

	engine.register(cmd)
	sel.register(cmd.Flags())
	return cmd
}

// combineEngineFlags adds the output-related flags to engineFlags.
type combineEngineFlags struct {
	engineFlags
	output string
	force  bool
	dryRun bool
}

func (f *combineEngineFlags) register(cmd *cobra.Command) {
	f.engineFlags.register(cmd.Flags())
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default combined.csv or combined.txt)")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Overwrite the output without asking")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the merge plan without writing anything")
}

func runCombine(cmd *cobra.Command, engine *combineEngineFlags, sel *selectionFlags, args []string) error {
	cfg, err := engine.resolve(cmd.Flags(), appConfig)
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	skip := []string{engine.output}
	if engine.output == "" {
		skip = []string{"combined" + combine.OutputExtension(combine.ModeText), "combined" + combine.OutputExtension(combine.ModeCSV)}
	}
	files, err := collectArgs(cmd, sel, args, skip...)
	if err != nil {
		return err
	}
	queue := filelist.New(files...)

	mode := combine.DetectMode(queue.Paths())
	output := engine.output
	if output == "" {
		output = "combined" + combine.OutputExtension(mode)
	}

	out := cmd.OutOrStdout()
	if engine.dryRun {
		fmt.Fprintf(out, "mode: %s\noutput: %s\nseparator: %s\nencoding: %s\nskip-header: %t\n",
			mode, output, cfg.Separator, cfg.Encoding, cfg.SkipCSVHeaderAfterFirst)
		for i, p := range queue.Paths() {
			fmt.Fprintf(out, "%3d  %s\n", i+1, p)
		}
		return nil
	}

	if !engine.force && queue.Len() > 0 && stdinIsTerminal() {
		if _, err := os.Stat(output); err == nil {
			ok, err := promptUser(cmd.InOrStdin(), out, fmt.Sprintf("%s already exists. Overwrite? (y/n): ", output))
			if err != nil {
				return fmt.Errorf("failed to read user input: %w", err)
			}
			if !ok {
				logger.Info("User chose not to overwrite the output file", zap.String("output", output))
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}
	}

	res, err := combine.Combine(queue.Paths(), output, cfg, logger)
	if err != nil {
		if errors.Is(err, combine.ErrEmptySelection) {
			return fmt.Errorf("no input files given: %w", err)
		}
		return fmt.Errorf("combine failed: %w", err)
	}

	fmt.Fprintf(out, "Files combined successfully! %d file(s) merged (%s mode).\nSaved to: %s\n",
		res.FilesMerged, res.Mode, res.OutputPath)
	return nil
}
