package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/memory"
)

const seedPlayerSQL = `
INSERT INTO players (id, name, ability)
VALUES (:id, :name, :ability)
ON CONFLICT (id) DO NOTHING`

// BootstrapSeed loads the demo squad into an empty players table. A table
// that already holds players is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	return seedPlayers(ctx, db, memory.SeedPlayers())
}

func seedPlayers(ctx context.Context, db *sqlx.DB, squad []player.Player) error {
	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players before seeding: %w", err)
	}
	if existing > 0 || len(squad) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareNamedContext(ctx, seedPlayerSQL)
	if err != nil {
		return fmt.Errorf("prepare seed statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range squad {
		row := playerTableModel{ID: int64(p.ID), Name: p.Name, Ability: p.Ability}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("seed player %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
