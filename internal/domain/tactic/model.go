package tactic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
)

var (
	ErrEmptyFormation    = errors.New("formation is empty")
	ErrUnknownPosition   = errors.New("unknown position")
	ErrDuplicatePosition = errors.New("duplicate position in formation")
	ErrFormationTooLarge = errors.New("formation exceeds maximum size")
	ErrMissingGoalkeeper = errors.New("formation has no goalkeeper")
)

const MaxFormationSize = 11

var formationBucketTypes = []position.Type{
	position.TypeDefender,
	position.TypeDefensiveMidfielder,
	position.TypeMidfielder,
	position.TypeAttackingMidfielder,
	position.TypeForward,
}

// Tactic is one complete formation: active slots, bench and reserves.
type Tactic struct {
	ID          int64
	Name        string
	positions   []*Position
	substitutes []player.ID
	reserves    []player.ID
	roles       role.Source
}

// ValidateFormation checks a formation before it is used to build a tactic.
func ValidateFormation(formation []position.ID) error {
	if len(formation) == 0 {
		return ErrEmptyFormation
	}
	if len(formation) > MaxFormationSize {
		return fmt.Errorf("%w: max=%d got=%d", ErrFormationTooLarge, MaxFormationSize, len(formation))
	}

	seen := make(map[position.ID]struct{}, len(formation))
	goalkeepers := 0
	for _, id := range formation {
		if !id.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePosition, id)
		}
		seen[id] = struct{}{}
		if id.Group() == position.GroupGoalkeeper {
			goalkeepers++
		}
	}
	if goalkeepers == 0 {
		return ErrMissingGoalkeeper
	}

	return nil
}

// ParseFormation turns "GK,DL,DC" style input into position ids.
func ParseFormation(raw []string) []position.ID {
	out := make([]position.ID, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			out = append(out, position.ID(part))
		}
	}
	return out
}

// FromFormation builds one slot per formation entry, in input order, with
// the roles the source offers for each position.
func FromFormation(roles role.Source, formation []position.ID) *Tactic {
	t := &Tactic{roles: roles}
	t.positions = buildPositions(roles, formation)
	return t
}

func buildPositions(roles role.Source, formation []position.ID) []*Position {
	out := make([]*Position, 0, len(formation))
	for _, id := range formation {
		out = append(out, NewPosition(position.GetGroupForPosition(id), id, role.InstancesFor(roles, id)))
	}
	return out
}

// Positions returns the active slots in formation order.
func (t *Tactic) Positions() []*Position {
	return append([]*Position(nil), t.positions...)
}

func (t *Tactic) Position(id position.ID) (*Position, bool) {
	for _, p := range t.positions {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

func (t *Tactic) Formation() []position.ID {
	out := make([]position.ID, 0, len(t.positions))
	for _, p := range t.positions {
		out = append(out, p.id)
	}
	return out
}

// Substitutes may contain player.NoID for empty bench slots.
func (t *Tactic) Substitutes() []player.ID {
	return append([]player.ID(nil), t.substitutes...)
}

func (t *Tactic) SetSubstitutes(ids []player.ID) {
	t.substitutes = append([]player.ID(nil), ids...)
}

// Reserves never contains player.NoID.
func (t *Tactic) Reserves() []player.ID {
	return append([]player.ID(nil), t.reserves...)
}

func (t *Tactic) SetReserves(ids []player.ID) {
	t.reserves = make([]player.ID, 0, len(ids))
	for _, id := range ids {
		if id != player.NoID {
			t.reserves = append(t.reserves, id)
		}
	}
}

// StartingPlayers maps each active slot to its player id (NoID when empty).
func (t *Tactic) StartingPlayers() map[position.ID]player.ID {
	out := make(map[position.ID]player.ID, len(t.positions))
	for _, p := range t.positions {
		out[p.id] = p.playerID
	}
	return out
}

type slotState struct {
	playerID player.ID
	player   *player.Player
	roleID   role.ID
	duty     role.Duty
}

// ChangeFormation rebuilds every slot for formation. With preserve set, a new
// slot whose position existed before gets the old player, role and duty back;
// matching is by exact position only. It returns the ids of players that no
// longer have a slot, in old formation order.
func (t *Tactic) ChangeFormation(formation []position.ID, preserve bool) []player.ID {
	previous := make(map[position.ID]slotState, len(t.positions))
	order := make([]position.ID, 0, len(t.positions))
	for _, p := range t.positions {
		state := slotState{playerID: p.playerID, player: p.player}
		if p.selected != nil {
			state.roleID = p.selected.ID()
			state.duty = p.selected.SelectedDuty()
		}
		previous[p.id] = state
		order = append(order, p.id)
	}

	t.positions = buildPositions(t.roles, formation)

	restored := make(map[position.ID]bool, len(t.positions))
	if preserve {
		for _, p := range t.positions {
			state, ok := previous[p.id]
			if !ok || restored[p.id] {
				continue
			}
			restored[p.id] = true
			if state.roleID != "" {
				p.SetRole(state.roleID)
				p.SetDuty(state.duty)
			}
			if state.player != nil {
				p.AssignPlayer(state.player)
			} else {
				p.AssignPlayerID(state.playerID)
			}
		}
	}

	var displaced []player.ID
	for _, id := range order {
		state := previous[id]
		if state.playerID == player.NoID || restored[id] {
			continue
		}
		displaced = append(displaced, state.playerID)
	}
	return displaced
}

// AssignPlayersToPosition assigns ids[i] to the i-th active slot. A non-empty
// id is taken off any other slot, the bench and the reserves first.
func (t *Tactic) AssignPlayersToPosition(ids []player.ID) {
	for i, id := range ids {
		if i >= len(t.positions) {
			break
		}
		target := t.positions[i]
		if id == player.NoID {
			target.ClearPlayer()
			continue
		}

		var handle *player.Player
		for j, other := range t.positions {
			if j == i || other.playerID != id {
				continue
			}
			handle = other.player
			other.ClearPlayer()
		}
		for k, sub := range t.substitutes {
			if sub == id {
				t.substitutes[k] = player.NoID
			}
		}
		t.reserves = removeID(t.reserves, id)

		if handle != nil {
			target.AssignPlayer(handle)
		} else {
			target.AssignPlayerID(id)
		}
	}
}

// ResolvePlayers attaches handles to slots that only carry an id.
func (t *Tactic) ResolvePlayers(lookup func(player.ID) (*player.Player, bool)) {
	for _, p := range t.positions {
		if p.playerID == player.NoID || p.player != nil {
			continue
		}
		if pl, ok := lookup(p.playerID); ok {
			p.player = pl
		}
	}
}

// FormationToString renders the outfield shape, e.g. "4-2-3-1". Defensive
// and attacking midfield lines only appear when they are occupied.
func (t *Tactic) FormationToString() string {
	counts := make(map[position.Type]int, len(formationBucketTypes))
	for _, p := range t.positions {
		counts[p.typ]++
	}

	parts := make([]string, 0, len(formationBucketTypes))
	for _, typ := range formationBucketTypes {
		n := counts[typ]
		if n == 0 && (typ == position.TypeDefensiveMidfielder || typ == position.TypeAttackingMidfielder) {
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, "-")
}

func removeID(ids []player.ID, id player.ID) []player.ID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
