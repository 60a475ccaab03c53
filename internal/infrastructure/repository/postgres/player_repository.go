package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	qb "github.com/riskibarqy/tactics-board/internal/platform/querybuilder"
	"github.com/riskibarqy/tactics-board/internal/platform/resilience"
)

type PlayerRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

var playerSelectColumns = []string{
	"id",
	"name",
	"ability",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *PlayerRepository {
	return &PlayerRepository{db: db, breaker: breaker}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	var out []player.Player
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		query, args, err := qb.Select(playerSelectColumns...).From("players").
			OrderBy("id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select players query: %w", err)
		}

		var rows []playerTableModel
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return fmt.Errorf("select players: %w", err)
		}
		out = playerRowsToDomain(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []player.ID) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	ids := make([]int64, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, int64(id))
	}

	var out []player.Player
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		query, args, err := qb.Select(playerSelectColumns...).From("players").
			Where(qb.In("id", int64SliceToAny(ids))).
			OrderBy("id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select players by ids query: %w", err)
		}

		var rows []playerTableModel
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return fmt.Errorf("select players by ids: %w", err)
		}
		out = playerRowsToDomain(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func playerRowsToDomain(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:      player.ID(row.ID),
			Name:    row.Name,
			Ability: row.Ability,
		})
	}
	return out
}
