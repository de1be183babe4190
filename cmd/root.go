package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/lint"
)

const defaultTimeout = 5 * time.Minute

// ErrIssuesFound is returned when linting succeeded but reported issues, so
// that the process exits with status 1.
var ErrIssuesFound = errors.New("issues found")

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "dbglint [paths...]",
	Short:            "dbglint - flags debug assertions whose operands mutate state",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'dbglint' is entered
			return cmd.Help()
		}
		// Format: dbglint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.SetContext(cmd.Context())
		return lintCmd.RunE(lintCmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", lint.DefaultConfigFile, "Path to the configuration file (.yaml or .toml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the linter")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(convertCmd)
}
