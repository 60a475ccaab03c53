package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tactics-board/internal/app"
	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/riskibarqy/tactics-board/internal/usecase"
	"github.com/spf13/cobra"
)

var migrator *app.Migrator

// migrateCmd replaces the root pre-run: the postgres store cannot be opened
// before its tables exist.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the postgres schema",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		migrator, err = app.NewMigrator(cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if migrator == nil {
			return nil
		}
		return migrator.Close()
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrator.Up()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [STEPS]",
	Short: "Roll back migrations, one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || v <= 0 {
				return crerr.Mark(crerr.Newf("invalid down steps %q", args[0]), usecase.ErrInvalidInput)
			}
			steps = v
		}
		return migrator.Down(steps)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := migrator.Version()
		if err != nil {
			return err
		}
		if !v.Applied {
			cmd.Println("version: none")
			cmd.Println("dirty: false")
			return nil
		}
		cmd.Println(fmt.Sprintf("version: %d", v.Version))
		cmd.Println(fmt.Sprintf("dirty: %t", v.Dirty))
		return nil
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:   "goto VERSION",
	Short: "Migrate up or down to VERSION",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return crerr.Mark(crerr.Wrapf(err, "invalid target version %q", args[0]), usecase.ErrInvalidInput)
		}
		return migrator.Goto(uint(v))
	},
}

var migrateForceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Record VERSION as applied without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || v < -1 {
			return crerr.Mark(crerr.Newf("invalid version %q", args[0]), usecase.ErrInvalidInput)
		}
		return migrator.Force(v)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd, migrateGotoCmd, migrateForceCmd)
	rootCmd.AddCommand(migrateCmd)
}
