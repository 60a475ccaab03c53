package tactic

import (
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
)

// Position is one slot of a formation.
type Position struct {
	id       position.ID
	group    position.Group
	typ      position.Type
	roles    []*role.Instance
	selected *role.Instance
	playerID player.ID
	player   *player.Player
}

// NewPosition keeps the candidates compatible with id, cloned and moved onto
// id. The first surviving candidate becomes the selected role.
func NewPosition(group position.Group, id position.ID, candidates []*role.Instance) *Position {
	p := &Position{
		id:    id,
		group: group,
		typ:   position.GetTypeForPosition(id),
	}
	for _, candidate := range candidates {
		if candidate == nil || !candidate.IsCompatible(id) {
			continue
		}
		r := candidate.Clone()
		r.SetSelectedPosition(id)
		p.roles = append(p.roles, r)
	}
	if len(p.roles) > 0 {
		p.selected = p.roles[0]
	}
	return p
}

func (p *Position) ID() position.ID        { return p.id }
func (p *Position) Group() position.Group  { return p.group }
func (p *Position) Type() position.Type    { return p.typ }
func (p *Position) Role() *role.Instance   { return p.selected }
func (p *Position) PlayerID() player.ID    { return p.playerID }
func (p *Position) Player() *player.Player { return p.player }
func (p *Position) HasPlayer() bool        { return p.playerID != player.NoID }

// Roles returns the compatible role instances in catalog order.
func (p *Position) Roles() []*role.Instance {
	return append([]*role.Instance(nil), p.roles...)
}

// SetRole selects the compatible role with the given id.
func (p *Position) SetRole(id role.ID) bool {
	for _, r := range p.roles {
		if r.ID() == id {
			p.selected = r
			return true
		}
	}
	return false
}

// SetDuty changes the duty of the selected role.
func (p *Position) SetDuty(d role.Duty) bool {
	if p.selected == nil {
		return false
	}
	return p.selected.SetSelectedDuty(d)
}

// AssignPlayer and ClearPlayer are the only writers of the slot's player.
// Keeping a player in a single slot is the caller's job.
func (p *Position) AssignPlayer(pl *player.Player) {
	if pl == nil {
		p.ClearPlayer()
		return
	}
	p.player = pl
	p.playerID = pl.ID
}

// AssignPlayerID records an id whose handle has not been resolved yet.
func (p *Position) AssignPlayerID(id player.ID) {
	if id == player.NoID {
		p.ClearPlayer()
		return
	}
	p.playerID = id
	if p.player != nil && p.player.ID != id {
		p.player = nil
	}
}

func (p *Position) ClearPlayer() {
	p.player = nil
	p.playerID = player.NoID
}
