package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-textdomain/internal/config"
	"github.com/goliatone/go-textdomain/internal/logger"
)

func Execute() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is shared by subcommands once the root command has loaded settings.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		debug    bool
		envFiles []string
		a        = &app{stdout: stdout, logger: logger.Discard()}
	)

	cmd := &cobra.Command{
		Use:          "textdomain",
		Short:        "Look up message translations by domain, context and count",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}

			log, err := logger.New(logger.Config{
				Format: cfg.LogFormat,
				Debug:  debug,
				Writer: stderr,
			})
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = log
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")

	cmd.AddCommand(
		newLookupCmd(a),
		newValidateCmd(a),
		newMigrateCmd(a),
	)
	return cmd
}
