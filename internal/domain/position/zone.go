package position

import "fmt"

const (
	ZoneLines = 6
	ZoneLanes = 5
)

// Zone is one cell of the pitch grid, numbered line*ZoneLanes+lane.
type Zone int

func ZoneAt(line, lane int) (Zone, bool) {
	if line < 0 || line >= ZoneLines || lane < 0 || lane >= ZoneLanes {
		return 0, false
	}
	return Zone(line*ZoneLanes + lane), true
}

func (z Zone) Line() int { return int(z) / ZoneLanes }
func (z Zone) Lane() int { return int(z) % ZoneLanes }

func (z Zone) Valid() bool {
	return z >= 0 && int(z) < ZoneLines*ZoneLanes
}

func (z Zone) String() string {
	return fmt.Sprintf("Z%d.%d", z.Line(), z.Lane())
}

// HomeZone returns the grid cell a position stands in.
func HomeZone(id ID) (Zone, bool) {
	row, ok := byID[id]
	if !ok {
		return 0, false
	}
	return ZoneAt(row.Line, row.Lane)
}

// AllZones returns every cell of the grid.
func AllZones() []Zone {
	out := make([]Zone, 0, ZoneLines*ZoneLanes)
	for z := Zone(0); int(z) < ZoneLines*ZoneLanes; z++ {
		out = append(out, z)
	}
	return out
}

// Level is the influence strength a role exerts in a zone.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "None"
	}
}
