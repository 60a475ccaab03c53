package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name", "substitutes").
		From("tactics").
		Where(Eq("id", int64(7)), Expr("updated_at > ?", "2026-01-01")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name, substitutes FROM tactics WHERE id = $1 AND updated_at > $2 ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) || args[1] != "2026-01-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	query, args, err := InsertInto("tactics").
		Columns("id", "name").
		Values(int64(1), "Classic").
		Values(int64(2), "Press").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO tactics (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("tactics").Columns("id", "name").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("tactic_positions").Where(Eq("tactic_id", int64(3))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM tactic_positions WHERE tactic_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("tactics").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

type slotRow struct {
	TacticID int64  `db:"tactic_id"`
	Slot     int    `db:"slot"`
	Position string `db:"position"`
	note     string
	Ignored  string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("tactic_positions", []slotRow{
		{TacticID: 1, Slot: 0, Position: "GK", note: "x"},
		{TacticID: 1, Slot: 1, Position: "DC"},
	}, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO tactic_positions (tactic_id, slot, position) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	wantArgs := []any{int64(1), 0, "GK", int64(1), 1, "DC"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[slotRow]("tactic_positions", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
