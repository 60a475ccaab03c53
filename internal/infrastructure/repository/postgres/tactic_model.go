package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type tacticTableModel struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Substitutes pq.Int64Array `db:"substitutes"`
	Reserves    pq.Int64Array `db:"reserves"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type tacticInsertModel struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Substitutes pq.Int64Array `db:"substitutes"`
	Reserves    pq.Int64Array `db:"reserves"`
}

type tacticPositionTableModel struct {
	TacticID     int64          `db:"tactic_id"`
	Slot         int            `db:"slot"`
	Position     string         `db:"position"`
	PlayerID     sql.NullInt64  `db:"player_id"`
	Role         string         `db:"role"`
	Duty         string         `db:"duty"`
	Instructions sql.NullString `db:"instructions"`
}
