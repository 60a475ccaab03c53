package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	qb "github.com/riskibarqy/tactics-board/internal/platform/querybuilder"
	"github.com/riskibarqy/tactics-board/internal/platform/resilience"
)

const tacticUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    substitutes = EXCLUDED.substitutes,
    reserves = EXCLUDED.reserves,
    updated_at = NOW()`

var tacticSelectColumns = []string{
	"id",
	"name",
	"substitutes",
	"reserves",
	"created_at",
	"updated_at",
}

var tacticPositionSelectColumns = []string{
	"tactic_id",
	"slot",
	"position",
	"player_id",
	"role",
	"duty",
	"instructions",
}

// TacticRepository stores a tactic as one tactics row plus one
// tactic_positions row per formation slot.
type TacticRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

func NewTacticRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *TacticRepository {
	return &TacticRepository{db: db, breaker: breaker}
}

func (r *TacticRepository) GetByID(ctx context.Context, id int64) (tactic.Data, bool, error) {
	var (
		out   tactic.Data
		found bool
	)
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		query, args, err := qb.Select(tacticSelectColumns...).From("tactics").
			Where(qb.Eq("id", id)).
			Limit(1).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select tactic by id query: %w", err)
		}

		var row tacticTableModel
		if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return nil
			}
			return fmt.Errorf("select tactic by id: %w", err)
		}

		positions, err := r.listPositions(ctx, []int64{row.ID})
		if err != nil {
			return err
		}

		out, err = tacticRowToData(row, positions[row.ID])
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return tactic.Data{}, false, err
	}

	return out, found, nil
}

func (r *TacticRepository) List(ctx context.Context) ([]tactic.Data, error) {
	var out []tactic.Data
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		query, args, err := qb.Select(tacticSelectColumns...).From("tactics").
			OrderBy("id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select tactics query: %w", err)
		}

		var rows []tacticTableModel
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return fmt.Errorf("select tactics: %w", err)
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		positions, err := r.listPositions(ctx, ids)
		if err != nil {
			return err
		}

		out = make([]tactic.Data, 0, len(rows))
		for _, row := range rows {
			item, err := tacticRowToData(row, positions[row.ID])
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *TacticRepository) Upsert(ctx context.Context, item tactic.Data) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx upsert tactic: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		insertModel := tacticInsertModel{
			ID:          item.ID,
			Name:        item.Name,
			Substitutes: idsToArray(item.Substitutes),
			Reserves:    idsToArray(item.Reserves),
		}
		query, args, err := qb.InsertModels("tactics", []tacticInsertModel{insertModel}, tacticUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert tactic query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert tactic: %w", err)
		}

		deleteQuery, deleteArgs, err := qb.DeleteFrom("tactic_positions").
			Where(qb.Eq("tactic_id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete tactic positions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("delete tactic positions: %w", err)
		}

		rows, err := positionRows(item)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			insertQuery, insertArgs, err := qb.InsertModels("tactic_positions", rows, "")
			if err != nil {
				return fmt.Errorf("build insert tactic positions query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				return fmt.Errorf("insert tactic positions: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit upsert tactic: %w", err)
		}
		return nil
	})
}

// Delete removes the tactic; its positions go with it through the foreign key.
func (r *TacticRepository) Delete(ctx context.Context, id int64) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		query, args, err := qb.DeleteFrom("tactics").
			Where(qb.Eq("id", id)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete tactic query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete tactic: %w", err)
		}
		return nil
	})
}

func (r *TacticRepository) listPositions(ctx context.Context, tacticIDs []int64) (map[int64][]tacticPositionTableModel, error) {
	out := make(map[int64][]tacticPositionTableModel, len(tacticIDs))
	if len(tacticIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select(tacticPositionSelectColumns...).From("tactic_positions").
		Where(qb.In("tactic_id", int64SliceToAny(tacticIDs))).
		OrderBy("tactic_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tactic positions query: %w", err)
	}

	var rows []tacticPositionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tactic positions: %w", err)
	}
	for _, row := range rows {
		out[row.TacticID] = append(out[row.TacticID], row)
	}

	return out, nil
}

// tacticRowToData expects positions ordered by slot.
func tacticRowToData(row tacticTableModel, positions []tacticPositionTableModel) (tactic.Data, error) {
	out := tactic.Data{
		ID:          row.ID,
		Name:        row.Name,
		Positions:   make([]tactic.PositionData, 0, len(positions)),
		Substitutes: arrayToIDs(row.Substitutes),
		Reserves:    arrayToIDs(row.Reserves),
	}
	for _, p := range positions {
		item := tactic.PositionData{
			Position: position.ID(p.Position),
			PlayerID: playerIDFromNull(p.PlayerID),
			Role:     role.ID(p.Role),
			Duty:     role.Duty(p.Duty),
		}
		if p.Instructions.Valid && p.Instructions.String != "" {
			var set instruction.Set
			if err := sonic.UnmarshalString(p.Instructions.String, &set); err != nil {
				return tactic.Data{}, fmt.Errorf("decode instructions of tactic %d slot %d: %w", p.TacticID, p.Slot, err)
			}
			item.Instructions = &set
		}
		out.Positions = append(out.Positions, item)
	}
	return out, nil
}

func positionRows(item tactic.Data) ([]tacticPositionTableModel, error) {
	out := make([]tacticPositionTableModel, 0, len(item.Positions))
	for i, p := range item.Positions {
		row := tacticPositionTableModel{
			TacticID: item.ID,
			Slot:     i,
			Position: string(p.Position),
			PlayerID: nullPlayerID(p.PlayerID),
			Role:     string(p.Role),
			Duty:     string(p.Duty),
		}
		if p.Instructions != nil {
			raw, err := sonic.MarshalString(p.Instructions)
			if err != nil {
				return nil, fmt.Errorf("encode instructions of slot %d: %w", i, err)
			}
			row.Instructions = sql.NullString{String: raw, Valid: true}
		}
		out = append(out, row)
	}
	return out, nil
}
