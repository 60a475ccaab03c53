package player

import (
	"fmt"
	"sort"
	"strings"
)

// ID identifies a player. Zero means "no player".
type ID int64

const NoID ID = 0

// Player is a handle to a squad member. The board never owns player records;
// it only holds pointers resolved through a Repository.
type Player struct {
	ID      ID
	Name    string
	Ability int
}

// Valid reports whether p is a usable player rather than an empty placeholder.
func (p *Player) Valid() bool {
	return p != nil && p.ID > 0 && strings.TrimSpace(p.Name) != ""
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Ability < 0 {
		return fmt.Errorf("player ability must not be negative")
	}

	return nil
}

// IDOf returns NoID for a nil handle.
func IDOf(p *Player) ID {
	if p == nil {
		return NoID
	}
	return p.ID
}

// ByAbility sorts strongest first, then by name.
func ByAbility(players []*Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Ability != b.Ability {
			return a.Ability > b.Ability
		}
		return a.Name < b.Name
	})
}

// Index resolves ids into handles.
type Index map[ID]*Player

func NewIndex(players []Player) Index {
	out := make(Index, len(players))
	for i := range players {
		p := players[i]
		out[p.ID] = &p
	}
	return out
}

func (idx Index) PlayerByID(id ID) (*Player, bool) {
	p, ok := idx[id]
	return p, ok
}
