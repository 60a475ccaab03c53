package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Ability   int       `db:"ability"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
