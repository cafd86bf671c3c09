package cmd

import (
	"fmt"

	"filecombiner/pkg/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSessionCmd() *cobra.Command {
	var (
		engine engineFlags
		sel    selectionFlags
	)

	cmd := &cobra.Command{
		Use:   "session [paths...]",
		Short: "Build and reorder the file queue interactively",
		Long: `Start an interactive session. Files given as arguments are queued first;
type 'help' inside the session for the list of commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engine.resolve(cmd.Flags(), appConfig)
			if err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			collect := sel.resolve(cmd.Flags(), appConfig, logger)

			s := session.New(cmd.OutOrStdout(), cfg, collect, logger)
			if stdinIsTerminal() {
				s.Prompt = "> "
			}
			if len(args) > 0 {
				files, err := collectArgs(cmd, &sel, args)
				if err != nil {
					return err
				}
				s.Files().Add(files...)
			}

			logger.Debug("Starting interactive session", zap.Int("queued", s.Files().Len()))
			if err := s.Run(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("session input failed: %w", err)
			}
			return nil
		},
	}

	engine.register(cmd.Flags())
	sel.register(cmd.Flags())
	return cmd
}
