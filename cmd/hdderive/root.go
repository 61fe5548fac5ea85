package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/hd-derive/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hdderive",
		Short:         "Derive HD wallet addresses with an external derivation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			return setupLogger(config.Get().LogLevel, config.Get().LogPretty)
		},
	}

	cmd.AddCommand(
		newDeriveCmd(),
		newCoinsCmd(),
		newServeCmd(),
		newSealCmd(),
	)
	return cmd
}

// setupLogger configures the global zerolog logger
func setupLogger(level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}
