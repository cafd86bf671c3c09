// File: cmd/version.go
package cmd

import (
	"fmt"

	"filecombiner/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd displays the current version of filecombiner.
// The --short flag prints only the version number.
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of filecombiner",
		Long:  `Display the current version information of the filecombiner CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the version number only")
	return cmd
}
