package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/roster"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/riskibarqy/tactics-board/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummaries(t *testing.T) {
	var buf bytes.Buffer
	err := renderSummaries(&buf, []usecase.TacticSummary{
		{ID: 3, Name: "Gegenpress", Formation: "4-3-3", Starting: 11, Substitutes: 7, Reserves: 6},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "FORMATION", "STARTING", "BENCH", "RESERVES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"3", "Gegenpress", "4-3-3", "11", "7", "6"}, strings.Fields(lines[1]))
}

func TestRenderBoard(t *testing.T) {
	formation := []position.ID{position.GK, position.DC}
	tac := tactic.FromFormation(nil, formation)
	tac.ID = 7
	tac.Name = "Tiny"

	keeper := &player.Player{ID: 1, Name: "Keeper", Ability: 70}
	sub := &player.Player{ID: 2, Name: "Sub", Ability: 60}
	m := roster.NewModel(2, formation)
	m.SwapPlayers(roster.StartingAt(position.GK), roster.BenchAt(0))
	require.True(t, m.AppendReserve(keeper))
	require.True(t, m.AppendReserve(sub))
	m.SwapPlayers(roster.ReserveAt(0), roster.StartingAt(position.GK))
	m.SwapPlayers(roster.ReserveAt(0), roster.BenchAt(1))

	var buf bytes.Buffer
	require.NoError(t, renderBoard(&buf, &usecase.Board{Tactic: tac, Roster: m}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "#7 Tiny ("), out)
	assert.Contains(t, out, "Keeper (70)")
	assert.Contains(t, out, "Sub (60)")
	assert.Contains(t, out, "(none)", "reserves are empty")
}

func TestExitCode(t *testing.T) {
	_, err := parseTacticID("abc")
	assert.Equal(t, exitBadInput, exitCode(err))
	assert.Equal(t, exitNotFound, exitCode(usecase.ErrNotFound))
	assert.Equal(t, exitFailure, exitCode(assert.AnError))
}
