package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// idsToArray encodes a nullable id list as bigint[]. Empty entries become 0.
func idsToArray(ids []*player.ID) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		if id == nil {
			out = append(out, 0)
			continue
		}
		out = append(out, int64(*id))
	}
	return out
}

func arrayToIDs(values pq.Int64Array) []*player.ID {
	out := make([]*player.ID, 0, len(values))
	for _, v := range values {
		if v <= 0 {
			out = append(out, nil)
			continue
		}
		id := player.ID(v)
		out = append(out, &id)
	}
	return out
}

func nullPlayerID(id *player.ID) sql.NullInt64 {
	if id == nil || *id == player.NoID {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func playerIDFromNull(v sql.NullInt64) *player.ID {
	if !v.Valid || v.Int64 <= 0 {
		return nil
	}
	id := player.ID(v.Int64)
	return &id
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
