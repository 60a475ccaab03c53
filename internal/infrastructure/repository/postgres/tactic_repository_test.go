package postgres

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
)

func idRef(v int64) *player.ID {
	id := player.ID(v)
	return &id
}

func TestPositionRowsKeepSlotOrder(t *testing.T) {
	item := tactic.Data{
		ID: 5,
		Positions: []tactic.PositionData{
			{Position: position.GK, PlayerID: idRef(1), Role: "goalkeeper", Duty: role.DutyDefend},
			{Position: position.DC, Role: "central_defender", Duty: role.DutyDefend},
		},
	}

	rows, err := positionRows(item)
	if err != nil {
		t.Fatalf("position rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Slot != 0 || rows[1].Slot != 1 {
		t.Fatalf("unexpected slots: %d, %d", rows[0].Slot, rows[1].Slot)
	}
	if rows[0].TacticID != 5 || rows[1].TacticID != 5 {
		t.Fatalf("expected tactic id on every row")
	}
	if !rows[0].PlayerID.Valid || rows[0].PlayerID.Int64 != 1 {
		t.Fatalf("expected player 1 on GK row, got %+v", rows[0].PlayerID)
	}
	if rows[1].PlayerID.Valid {
		t.Fatalf("expected empty DC row to be null")
	}
	if rows[0].Instructions.Valid {
		t.Fatalf("expected null instructions without a custom set")
	}
}

func TestTacticRowToDataRoundTrip(t *testing.T) {
	item := tactic.Data{
		ID:   9,
		Name: "Counter",
		Positions: []tactic.PositionData{
			{Position: position.GK, PlayerID: idRef(1), Role: "goalkeeper", Duty: role.DutyDefend},
			{Position: position.DCL, PlayerID: idRef(3), Role: "central_defender", Duty: role.DutyStopper},
			{Position: position.STC, Role: "advanced_forward", Duty: role.DutyAttack, Instructions: &instruction.Set{
				Shooting:         instruction.Present(instruction.FrequencyMore, false),
				MoveIntoChannels: instruction.Present(true, true),
			}},
		},
		Substitutes: []*player.ID{idRef(12), nil, nil},
		Reserves:    []*player.ID{idRef(20), idRef(21)},
	}

	row := tacticTableModel{
		ID:          item.ID,
		Name:        item.Name,
		Substitutes: idsToArray(item.Substitutes),
		Reserves:    idsToArray(item.Reserves),
	}
	rows, err := positionRows(item)
	if err != nil {
		t.Fatalf("position rows: %v", err)
	}
	got, err := tacticRowToData(row, rows)
	if err != nil {
		t.Fatalf("row to data: %v", err)
	}

	if got.ID != item.ID || got.Name != item.Name {
		t.Fatalf("unexpected header: %+v", got)
	}
	if len(got.Positions) != len(item.Positions) {
		t.Fatalf("expected %d positions, got %d", len(item.Positions), len(got.Positions))
	}
	for i, want := range item.Positions {
		p := got.Positions[i]
		if p.Position != want.Position || p.Role != want.Role || p.Duty != want.Duty {
			t.Fatalf("position %d: expected %+v, got %+v", i, want, p)
		}
		if (p.PlayerID == nil) != (want.PlayerID == nil) {
			t.Fatalf("position %d: player presence mismatch", i)
		}
		if p.PlayerID != nil && *p.PlayerID != *want.PlayerID {
			t.Fatalf("position %d: expected player %d, got %d", i, *want.PlayerID, *p.PlayerID)
		}
		if (p.Instructions == nil) != (want.Instructions == nil) {
			t.Fatalf("position %d: instructions presence mismatch", i)
		}
		if p.Instructions != nil && *p.Instructions != *want.Instructions {
			t.Fatalf("position %d: expected instructions %+v, got %+v", i, *want.Instructions, *p.Instructions)
		}
	}
	if len(got.Substitutes) != 3 || got.Substitutes[0] == nil || *got.Substitutes[0] != 12 || got.Substitutes[1] != nil {
		t.Fatalf("unexpected substitutes: %v", got.Substitutes)
	}
	if len(got.Reserves) != 2 || *got.Reserves[1] != 21 {
		t.Fatalf("unexpected reserves: %v", got.Reserves)
	}
}

func TestTacticRowToDataRejectsBadInstructions(t *testing.T) {
	_, err := tacticRowToData(tacticTableModel{ID: 1}, []tacticPositionTableModel{
		{TacticID: 1, Position: "GK", Instructions: sql.NullString{String: "{not json", Valid: true}},
	})
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTacticRowToDataWithoutPositions(t *testing.T) {
	got, err := tacticRowToData(tacticTableModel{ID: 1, Name: "Empty", Substitutes: pq.Int64Array{0, 0}}, nil)
	if err != nil {
		t.Fatalf("row to data: %v", err)
	}
	if len(got.Positions) != 0 {
		t.Fatalf("expected no positions, got %d", len(got.Positions))
	}
	if len(got.Substitutes) != 2 || got.Substitutes[0] != nil {
		t.Fatalf("expected two empty bench slots, got %v", got.Substitutes)
	}
	if len(got.Reserves) != 0 {
		t.Fatalf("expected no reserves, got %v", got.Reserves)
	}
}
