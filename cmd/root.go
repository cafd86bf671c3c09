package cmd

import (
	"fmt"

	"filecombiner/pkg/config"
	"filecombiner/pkg/logging"
	"filecombiner/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Shared state populated by the root command before any subcommand runs.
var (
	logger    = zap.NewNop()
	appConfig = config.Default()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = NewRootCmd()

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	var (
		configFile string
		debug      bool
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "filecombiner",
		Short: "filecombiner merges text or CSV files into a single file",
		Long: `filecombiner merges an ordered list of plain-text or CSV files into one output file.
CSV inputs are merged row by row with optional header skipping; text inputs are
concatenated with a configurable separator and encoding.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, nil)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			appConfig = cfg

			level := *cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			l, err := logging.Setup(logging.Options{
				Debug:      debug,
				Level:      level,
				AppName:    version.AppName,
				AppVersion: version.Version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			logger.Debug("Configuration ready", zap.String("configFlag", configFile))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a TOML config file (default $UserConfigDir/filecombiner/config.toml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable human-readable debug logging")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCombineCmd(),
		newSessionCmd(),
		newDetectCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Logger returns the logger configured for the running command.
func Logger() *zap.Logger {
	return logger
}
