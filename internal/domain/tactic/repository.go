package tactic

import "context"

// Repository persists tactics in their flat Data shape.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Data, bool, error)
	List(ctx context.Context) ([]Data, error)
	Upsert(ctx context.Context, item Data) error
	Delete(ctx context.Context, id int64) error
}
