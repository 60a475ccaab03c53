package roster

import (
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
)

const DefaultAllowedSubstitutes = 7

// PlayerResolver is the player lookup collaborator used when a model is built
// from persisted ids.
type PlayerResolver interface {
	PlayerByID(id player.ID) (*player.Player, bool)
}

// Model is the working set of a board: starting eleven keyed by position, a
// fixed-size bench and a dense reserve list. A player is held by at most one
// cell across the three containers.
type Model struct {
	allowed     int
	formation   []position.ID
	starting    map[position.ID]*player.Player
	substitutes []*player.Player
	reserves    []*player.Player

	listeners        []subscription
	nextSubID        int
	depth            int
	dirty            bool
	notifiedSubs     int
	notifiedReserves int
}

// NewModel returns an empty board. A negative allowed count is treated as 0.
func NewModel(allowed int, formation []position.ID) *Model {
	if allowed < 0 {
		allowed = 0
	}
	m := &Model{
		allowed:     allowed,
		substitutes: make([]*player.Player, allowed),
	}
	m.resetFormation(formation)
	return m
}

// FromTactic resolves the tactic's ids into handles. Ids the resolver does not
// know are dropped, a player already placed is not placed again and bench
// entries past the allowed count go to the reserves.
func FromTactic(t *tactic.Tactic, players PlayerResolver, allowed int) *Model {
	m := NewModel(allowed, t.Formation())
	seen := make(map[player.ID]bool)
	resolve := func(handle *player.Player, id player.ID) *player.Player {
		if id == player.NoID || seen[id] {
			return nil
		}
		if handle == nil && players != nil {
			handle, _ = players.PlayerByID(id)
		}
		if handle == nil {
			return nil
		}
		seen[id] = true
		return handle
	}

	for _, p := range t.Positions() {
		if pl := resolve(p.Player(), p.PlayerID()); pl != nil {
			m.starting[p.ID()] = pl
		}
	}

	var overflow []*player.Player
	for i, id := range t.Substitutes() {
		pl := resolve(nil, id)
		if pl == nil {
			continue
		}
		if i < m.allowed {
			m.substitutes[i] = pl
			continue
		}
		overflow = append(overflow, pl)
	}

	for _, id := range t.Reserves() {
		if pl := resolve(nil, id); pl != nil {
			m.reserves = append(m.reserves, pl)
		}
	}
	m.reserves = append(m.reserves, overflow...)

	m.notifiedSubs = m.SubstituteCount()
	m.notifiedReserves = len(m.reserves)
	return m
}

func (m *Model) AllowedCount() int { return m.allowed }

// Formation returns the active positions in order.
func (m *Model) Formation() []position.ID {
	return append([]position.ID(nil), m.formation...)
}

func (m *Model) IsActive(id position.ID) bool {
	_, ok := m.starting[id]
	return ok
}

// Starting returns a copy of the starting map. Every active position has a
// key; empty positions map to nil.
func (m *Model) Starting() map[position.ID]*player.Player {
	out := make(map[position.ID]*player.Player, len(m.starting))
	for id, p := range m.starting {
		out[id] = p
	}
	return out
}

// Substitutes returns a copy of the bench, always AllowedCount long.
func (m *Model) Substitutes() []*player.Player {
	return append([]*player.Player(nil), m.substitutes...)
}

func (m *Model) Reserves() []*player.Player {
	return append([]*player.Player(nil), m.reserves...)
}

// SubstituteCount counts occupied bench slots.
func (m *Model) SubstituteCount() int {
	n := 0
	for _, p := range m.substitutes {
		if p != nil {
			n++
		}
	}
	return n
}

// Valid reports whether loc addresses an existing cell.
func (m *Model) Valid(loc Location) bool {
	switch loc.Kind {
	case KindStarting:
		return m.IsActive(loc.Position)
	case KindBench:
		return loc.Index >= 0 && loc.Index < len(m.substitutes)
	case KindReserve:
		return loc.Index >= 0 && loc.Index < len(m.reserves)
	default:
		return false
	}
}

// PlayerAt returns the occupant of loc. ok is false for an invalid location.
func (m *Model) PlayerAt(loc Location) (*player.Player, bool) {
	if !m.Valid(loc) {
		return nil, false
	}
	switch loc.Kind {
	case KindStarting:
		return m.starting[loc.Position], true
	case KindBench:
		return m.substitutes[loc.Index], true
	default:
		return m.reserves[loc.Index], true
	}
}

// Find returns where the player with id currently sits.
func (m *Model) Find(id player.ID) (Location, bool) {
	if id == player.NoID {
		return Location{}, false
	}
	for _, pos := range m.formation {
		if p := m.starting[pos]; p != nil && p.ID == id {
			return StartingAt(pos), true
		}
	}
	for i, p := range m.substitutes {
		if p != nil && p.ID == id {
			return BenchAt(i), true
		}
	}
	for i, p := range m.reserves {
		if p.ID == id {
			return ReserveAt(i), true
		}
	}
	return Location{}, false
}

func (m *Model) resetFormation(formation []position.ID) {
	m.formation = make([]position.ID, 0, len(formation))
	m.starting = make(map[position.ID]*player.Player, len(formation))
	for _, id := range formation {
		if _, ok := m.starting[id]; ok {
			continue
		}
		m.formation = append(m.formation, id)
		m.starting[id] = nil
	}
}

// ApplyTo writes the board back onto t. Slots of t that are not active here
// are cleared.
func (m *Model) ApplyTo(t *tactic.Tactic) {
	for _, p := range t.Positions() {
		p.AssignPlayer(m.starting[p.ID()])
	}

	subs := make([]player.ID, len(m.substitutes))
	for i, p := range m.substitutes {
		subs[i] = player.IDOf(p)
	}
	t.SetSubstitutes(subs)

	reserves := make([]player.ID, 0, len(m.reserves))
	for _, p := range m.reserves {
		reserves = append(reserves, p.ID)
	}
	t.SetReserves(reserves)
}
