package cmd

import (
	"fmt"

	"filecombiner/pkg/combine"

	"github.com/spf13/cobra"
)

func newDetectCmd() *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Show which merge mode the given inputs select",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectArgs(cmd, &sel, args)
			if err != nil {
				return err
			}
			mode := combine.DetectMode(files)
			fmt.Fprintf(cmd.OutOrStdout(), "mode: %s\nextension: %s\nfiles: %d\n",
				mode, combine.OutputExtension(mode), len(files))
			return nil
		},
	}

	sel.register(cmd.Flags())
	return cmd
}
