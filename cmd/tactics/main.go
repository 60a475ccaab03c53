package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/tactics-board/internal/app"
	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/observability"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

var (
	storeFlag  string
	dirFlag    string
	jsonOutput bool

	board       *app.App
	commandSpan trace.Span
)

var rootCmd = &cobra.Command{
	Use:   "tactics",
	Short: "Edit football tactics from the command line",
	Long: `tactics keeps a set of football tactics: a formation, a role and duty
per position, the starting eleven, a fixed-size bench and the reserves.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if storeFlag != "" {
			os.Setenv("TACTICS_STORE", storeFlag)
		}
		if dirFlag != "" {
			os.Setenv("TACTICS_DIR", dirFlag)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		logging.SetDefault(logger)

		board, err = app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		ctx, span := observability.StartCommand(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(ctx)
		commandSpan = span
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if board == nil {
			return nil
		}
		defer board.Logger.Sync()
		observability.EndCommand(commandSpan, nil)
		return board.Close(context.WithoutCancel(cmd.Context()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Tactic store: memory, file or postgres (overrides TACTICS_STORE)")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Directory of the file store (overrides TACTICS_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print tactics as JSON")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tactics: %v\n", err)
		observability.EndCommand(commandSpan, err)
		if board != nil {
			_ = board.Close(context.Background())
		}
		if migrator != nil {
			_ = migrator.Close()
		}
		stop()
		os.Exit(exitCode(err))
	}
}
