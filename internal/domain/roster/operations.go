package roster

import (
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
)

// SwapResult reports which side of a swap was written. A is the write into
// the first location, B the write into the second.
type SwapResult struct {
	A bool
	B bool
}

func (r SwapResult) Complete() bool { return r.A && r.B }

// SwapPlayers exchanges the occupants of a and b. Both occupants are read
// before anything is written, then b is written before a.
//
// Each side is applied on its own: a write into an inactive position or an
// out of range index is skipped while the other side still goes through.
// Writing nil into a reserve index removes that index. Writing a player past
// the end of the reserves is rejected, use AppendReserve instead.
func (m *Model) SwapPlayers(a, b Location) SwapResult {
	pa, _ := m.PlayerAt(a)
	pb, _ := m.PlayerAt(b)

	m.BeginUpdate()
	defer m.EndUpdate()

	var res SwapResult
	res.B = m.write(b, pa)
	res.A = m.write(a, pb)
	if res.A || res.B {
		m.touch()
	}
	return res
}

func (m *Model) write(loc Location, p *player.Player) bool {
	switch loc.Kind {
	case KindStarting:
		if !m.IsActive(loc.Position) {
			return false
		}
		m.starting[loc.Position] = p
		return true
	case KindBench:
		if loc.Index < 0 || loc.Index >= len(m.substitutes) {
			return false
		}
		m.substitutes[loc.Index] = p
		return true
	case KindReserve:
		if loc.Index < 0 || loc.Index >= len(m.reserves) {
			return false
		}
		if p == nil {
			m.reserves = append(m.reserves[:loc.Index], m.reserves[loc.Index+1:]...)
			return true
		}
		m.reserves[loc.Index] = p
		return true
	default:
		return false
	}
}

// SetFormation switches to formation with the group-aware remap of
// position.Remap. Players that found no slot are returned in old formation
// order; moving them somewhere is up to the caller.
func (m *Model) SetFormation(formation []position.ID) []*player.Player {
	previous := make([]position.Placement[*player.Player], 0, len(m.formation))
	for _, id := range m.formation {
		if p := m.starting[id]; p != nil {
			previous = append(previous, position.Placement[*player.Player]{From: id, Value: p})
		}
	}

	result := position.Remap(previous, formation)

	m.BeginUpdate()
	defer m.EndUpdate()

	m.resetFormation(formation)
	for id, p := range result.Placed {
		m.starting[id] = p
	}
	m.touch()

	unplaced := make([]*player.Player, 0, len(result.Unplaced))
	for _, p := range result.Unplaced {
		unplaced = append(unplaced, p.Value)
	}
	return unplaced
}

// SyncFormationFromViews rebuilds the starting map for exactly active, taking
// each position's player from players. A player placed this way leaves the
// bench and the reserves. Players that started before and have no position
// now are returned.
func (m *Model) SyncFormationFromViews(active []position.ID, players map[position.ID]*player.Player) []*player.Player {
	old := make([]*player.Player, 0, len(m.formation))
	for _, id := range m.formation {
		if p := m.starting[id]; p != nil {
			old = append(old, p)
		}
	}

	m.BeginUpdate()
	defer m.EndUpdate()

	m.resetFormation(active)
	placed := make(map[player.ID]bool, len(m.formation))
	for _, id := range m.formation {
		p := players[id]
		if p == nil || placed[p.ID] {
			continue
		}
		m.starting[id] = p
		placed[p.ID] = true
		m.removeFromLists(p.ID)
	}
	m.touch()

	var dropped []*player.Player
	for _, p := range old {
		if !placed[p.ID] {
			dropped = append(dropped, p)
		}
	}
	return dropped
}

func (m *Model) removeFromLists(id player.ID) {
	for i, p := range m.substitutes {
		if p != nil && p.ID == id {
			m.substitutes[i] = nil
		}
	}
	out := m.reserves[:0]
	for _, p := range m.reserves {
		if p.ID != id {
			out = append(out, p)
		}
	}
	m.reserves = out
}

// CompactSubstitutes keeps the valid bench players in order, followed by
// empty slots up to AllowedCount.
func (m *Model) CompactSubstitutes() {
	compacted := make([]*player.Player, m.allowed)
	n := 0
	for _, p := range m.substitutes {
		if p.Valid() && n < m.allowed {
			compacted[n] = p
			n++
		}
	}
	if samePlayers(m.substitutes, compacted) {
		return
	}
	m.substitutes = compacted
	m.touch()
}

// CompactReserves drops nil and invalid reserve entries without padding.
func (m *Model) CompactReserves() {
	compacted := validOnly(m.reserves)
	if samePlayers(m.reserves, compacted) {
		return
	}
	m.reserves = compacted
	m.touch()
}

// SortSubstitutes orders the bench by ability, then name, and compacts it.
func (m *Model) SortSubstitutes() {
	valid := validOnly(m.substitutes)
	player.ByAbility(valid)
	sorted := make([]*player.Player, m.allowed)
	copy(sorted, valid)
	if samePlayers(m.substitutes, sorted) {
		return
	}
	m.substitutes = sorted
	m.touch()
}

// SortReserves orders the reserves by ability, then name, and compacts them.
func (m *Model) SortReserves() {
	sorted := validOnly(m.reserves)
	player.ByAbility(sorted)
	if samePlayers(m.reserves, sorted) {
		return
	}
	m.reserves = sorted
	m.touch()
}

// AppendReserve is the append path for the reserves. It rejects invalid
// players and players already on the board.
func (m *Model) AppendReserve(p *player.Player) bool {
	if !p.Valid() {
		return false
	}
	if _, ok := m.Find(p.ID); ok {
		return false
	}
	m.reserves = append(m.reserves, p)
	m.touch()
	return true
}

// ClearStartingLineup moves every starter to the reserves. Positions stay
// active with no player.
func (m *Model) ClearStartingLineup() {
	m.BeginUpdate()
	defer m.EndUpdate()

	for _, id := range m.formation {
		p := m.starting[id]
		if p == nil {
			continue
		}
		m.addReserveOnce(p)
		m.starting[id] = nil
		m.touch()
	}
}

// ClearSubstitutes moves the bench to the reserves and leaves AllowedCount
// empty slots.
func (m *Model) ClearSubstitutes() {
	m.BeginUpdate()
	defer m.EndUpdate()

	for _, p := range m.substitutes {
		if p != nil {
			m.addReserveOnce(p)
			m.touch()
		}
	}
	m.substitutes = make([]*player.Player, m.allowed)
}

func (m *Model) addReserveOnce(p *player.Player) {
	for _, r := range m.reserves {
		if r.ID == p.ID {
			return
		}
	}
	m.reserves = append(m.reserves, p)
}

func validOnly(players []*player.Player) []*player.Player {
	out := make([]*player.Player, 0, len(players))
	for _, p := range players {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

func samePlayers(a, b []*player.Player) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
