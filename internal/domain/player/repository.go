package player

import "context"

// Repository describes player lookups the board needs.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []ID) ([]Player, error)
}
