package main

import (
	"os"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/roster"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/tactics-board/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	formationFlag    string
	sortBenchFlag    bool
	instructionsFile string
	resetFlag        bool
	keepIDFlag       bool
)

func init() {
	createCmd.Flags().StringVarP(&formationFlag, "formation", "f", "", "Comma separated positions, e.g. GK,DL,DC,DR,...")
	_ = createCmd.MarkFlagRequired("formation")
	sortCmd.Flags().BoolVar(&sortBenchFlag, "bench", false, "Sort the bench instead of the reserves")
	instructionsCmd.Flags().StringVar(&instructionsFile, "file", "", "JSON file with the instruction set")
	instructionsCmd.Flags().BoolVar(&resetFlag, "reset", false, "Restore the role's default instructions")
	importCmd.Flags().BoolVar(&keepIDFlag, "keep-id", false, "Keep the id stored in the file")

	rootCmd.AddCommand(
		createCmd,
		listCmd,
		showCmd,
		deleteCmd,
		formationCmd,
		swapCmd,
		clearCmd,
		clearBenchCmd,
		roleCmd,
		dutyCmd,
		instructionsCmd,
		reserveCmd,
		sortCmd,
		exportCmd,
		importCmd,
	)
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tactic with the whole squad in the reserves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := board.Tactics.Create(cmd.Context(), usecase.CreateTacticInput{
			Name:      args[0],
			Formation: []string{formationFlag},
		})
		if err != nil {
			return err
		}
		return printTactic(cmd, out)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tactics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := board.Tactics.List(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd, items)
		}
		return renderSummaries(cmd.OutOrStdout(), items)
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a tactic with player names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTacticID(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			out, err := board.Tactics.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		}
		b, err := board.Tactics.OpenBoard(cmd.Context(), id)
		if err != nil {
			return err
		}
		return renderBoard(cmd.OutOrStdout(), b)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a tactic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTacticID(args[0])
		if err != nil {
			return err
		}
		if err := board.Tactics.Delete(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Printf("deleted tactic %d\n", id)
		return nil
	},
}

var formationCmd = &cobra.Command{
	Use:   "formation ID POSITIONS",
	Short: "Change the formation, moving starters to the closest new slot",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.ChangeFormation(cmd.Context(), id, args[1:])
		})
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap ID FROM TO",
	Short: "Swap two locations, e.g. reserve:0 starting:GK or bench:2",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := roster.ParseLocation(args[1])
		if err != nil {
			return crerr.Mark(err, usecase.ErrInvalidInput)
		}
		b, err := roster.ParseLocation(args[2])
		if err != nil {
			return crerr.Mark(err, usecase.ErrInvalidInput)
		}
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.Swap(cmd.Context(), usecase.SwapInput{TacticID: id, A: a, B: b})
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear ID",
	Short: "Move the starting eleven to the reserves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.ClearStartingLineup(cmd.Context(), id)
		})
	},
}

var clearBenchCmd = &cobra.Command{
	Use:   "clear-bench ID",
	Short: "Move the bench to the reserves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.ClearSubstitutes(cmd.Context(), id)
		})
	},
}

var roleCmd = &cobra.Command{
	Use:   "role ID POSITION ROLE",
	Short: "Select the role played at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.SetRole(cmd.Context(), usecase.SetRoleInput{TacticID: id, Position: args[1], Role: args[2]})
		})
	},
}

var dutyCmd = &cobra.Command{
	Use:   "duty ID POSITION DUTY",
	Short: "Select the duty of the role at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.SetDuty(cmd.Context(), usecase.SetDutyInput{TacticID: id, Position: args[1], Duty: args[2]})
		})
	},
}

var instructionsCmd = &cobra.Command{
	Use:   "instructions ID POSITION",
	Short: "Override or reset the instructions of the role at a position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var set *instruction.Set
		switch {
		case resetFlag && instructionsFile != "":
			return crerr.Mark(crerr.New("--file and --reset are mutually exclusive"), usecase.ErrInvalidInput)
		case instructionsFile != "":
			loaded, err := readInstructions(instructionsFile)
			if err != nil {
				return err
			}
			set = &loaded
		case !resetFlag:
			return crerr.Mark(crerr.New("one of --file or --reset is required"), usecase.ErrInvalidInput)
		}

		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.SetCustomInstructions(cmd.Context(), id, args[1], set)
		})
	},
}

var reserveCmd = &cobra.Command{
	Use:   "reserve ID PLAYER_ID...",
	Short: "Add squad players to the reserves",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]player.ID, 0, len(args)-1)
		for _, raw := range args[1:] {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil || v <= 0 {
				return crerr.Mark(crerr.Newf("invalid player id %q", raw), usecase.ErrInvalidInput)
			}
			ids = append(ids, player.ID(v))
		}
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			return board.Tactics.AddToReserves(cmd.Context(), id, ids)
		})
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort ID",
	Short: "Sort the reserves (or the bench) by ability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, args[0], func(id int64) (tactic.Data, error) {
			if sortBenchFlag {
				return board.Tactics.SortSubstitutes(cmd.Context(), id)
			}
			return board.Tactics.SortReserves(cmd.Context(), id)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export ID FILE",
	Short: "Write a tactic document to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTacticID(args[0])
		if err != nil {
			return err
		}
		out, err := board.Tactics.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := filestore.WriteFile(args[1], out); err != nil {
			return err
		}
		cmd.Printf("exported tactic %d to %s\n", id, args[1])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Store a tactic document read from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := filestore.ReadFile(args[0])
		if err != nil {
			return err
		}
		out, err := board.Tactics.Import(cmd.Context(), doc, keepIDFlag)
		if err != nil {
			return err
		}
		return printTactic(cmd, out)
	},
}

func mutate(cmd *cobra.Command, rawID string, fn func(id int64) (tactic.Data, error)) error {
	id, err := parseTacticID(rawID)
	if err != nil {
		return err
	}
	out, err := fn(id)
	if err != nil {
		return err
	}
	return printTactic(cmd, out)
}

// printTactic prints the stored document as JSON, or the resolved board.
func printTactic(cmd *cobra.Command, out tactic.Data) error {
	if jsonOutput {
		return writeJSON(cmd, out)
	}
	b, err := board.Tactics.OpenBoard(cmd.Context(), out.ID)
	if err != nil {
		return err
	}
	return renderBoard(cmd.OutOrStdout(), b)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := sonic.ConfigStd.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseTacticID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, crerr.Mark(crerr.Newf("invalid tactic id %q", raw), usecase.ErrInvalidInput)
	}
	return id, nil
}

func readInstructions(path string) (instruction.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return instruction.Set{}, crerr.Wrapf(err, "read instructions %s", path)
	}
	var set instruction.Set
	if err := sonic.Unmarshal(raw, &set); err != nil {
		return instruction.Set{}, crerr.Mark(crerr.Wrapf(err, "decode instructions %s", path), usecase.ErrInvalidInput)
	}
	return set, nil
}

const (
	exitFailure  = 1
	exitBadInput = 2
	exitNotFound = 3
)

func exitCode(err error) int {
	switch {
	case crerr.Is(err, usecase.ErrInvalidInput):
		return exitBadInput
	case crerr.Is(err, usecase.ErrNotFound), crerr.Is(err, filestore.ErrTacticFileNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}
