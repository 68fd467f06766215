package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/core/config"
)

// ConfigLoader returns the configuration commands run with.
type ConfigLoader func() (config.Config, error)

func Execute() {
	cmd := NewRootCmd(func() (config.Config, error) {
		return config.Load(config.ServiceTypeCLI)
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd(load ConfigLoader) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "grantctl",
		Short:        "Discover Canadian nonprofit grants from the command line",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			// Logs go to stderr so stdout stays machine-readable.
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(logger.NewTraceHandler(handler)))
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.AddCommand(searchCmd(load))
	cmd.AddCommand(locateCmd(load))
	cmd.AddCommand(draftCmd(load))
	return cmd
}
