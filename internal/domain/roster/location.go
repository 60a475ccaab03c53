package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/tactics-board/internal/domain/position"
)

// Kind names the container a Location points into.
type Kind string

const (
	KindStarting Kind = "starting"
	KindBench    Kind = "bench"
	KindReserve  Kind = "reserve"
)

// Location addresses one cell of the board: an active position, a bench slot
// or a reserve index.
type Location struct {
	Kind     Kind
	Position position.ID
	Index    int
}

func StartingAt(id position.ID) Location { return Location{Kind: KindStarting, Position: id} }
func BenchAt(i int) Location             { return Location{Kind: KindBench, Index: i} }
func ReserveAt(i int) Location           { return Location{Kind: KindReserve, Index: i} }

func (l Location) String() string {
	switch l.Kind {
	case KindStarting:
		return fmt.Sprintf("starting:%s", l.Position)
	case KindBench:
		return fmt.Sprintf("bench:%d", l.Index)
	case KindReserve:
		return fmt.Sprintf("reserve:%d", l.Index)
	default:
		return "unknown"
	}
}

// ParseLocation reads the String form back, e.g. "bench:2" or "starting:DC".
func ParseLocation(raw string) (Location, error) {
	kind, rest, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || rest == "" {
		return Location{}, fmt.Errorf("invalid location %q", raw)
	}

	switch Kind(strings.ToLower(kind)) {
	case KindStarting:
		return StartingAt(position.ID(strings.ToUpper(rest))), nil
	case KindBench:
		idx, err := strconv.Atoi(rest)
		if err != nil {
			return Location{}, fmt.Errorf("invalid bench index %q: %w", rest, err)
		}
		return BenchAt(idx), nil
	case KindReserve:
		idx, err := strconv.Atoi(rest)
		if err != nil {
			return Location{}, fmt.Errorf("invalid reserve index %q: %w", rest, err)
		}
		return ReserveAt(idx), nil
	default:
		return Location{}, fmt.Errorf("invalid location kind %q", kind)
	}
}
