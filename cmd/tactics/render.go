package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/usecase"
)

const emptyCell = "-"

func renderSummaries(w io.Writer, items []usecase.TacticSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFORMATION\tSTARTING\tBENCH\tRESERVES")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
			item.ID, item.Name, item.Formation, item.Starting, item.Substitutes, item.Reserves)
	}
	return tw.Flush()
}

func renderBoard(w io.Writer, b *usecase.Board) error {
	t := b.Tactic
	fmt.Fprintf(w, "#%d %s (%s)\n\n", t.ID, t.Name, t.FormationToString())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tPLAYER\tROLE\tDUTY")
	starting := b.Roster.Starting()
	for _, pos := range t.Positions() {
		roleName, duty := emptyCell, emptyCell
		if r := pos.Role(); r != nil {
			roleName = r.Name()
			if r.HasCustomInstructions() {
				roleName += " *"
			}
			duty = string(r.SelectedDuty())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pos.ID(), playerCell(starting[pos.ID()]), roleName, duty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nBench")
	if err := renderList(w, b.Roster.Substitutes()); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nReserves")
	return renderList(w, b.Roster.Reserves())
}

func renderList(w io.Writer, players []*player.Player) error {
	if len(players) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, p := range players {
		fmt.Fprintf(tw, "  %d\t%s\n", i, playerCell(p))
	}
	return tw.Flush()
}

func playerCell(p *player.Player) string {
	if p == nil {
		return emptyCell
	}
	return fmt.Sprintf("%s (%d)", p.Name, p.Ability)
}
