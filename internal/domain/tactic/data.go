package tactic

import (
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
)

// Data is the flat persisted shape of a Tactic.
type Data struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Positions   []PositionData `json:"positions"`
	Substitutes []*player.ID   `json:"substitutes"`
	Reserves    []*player.ID   `json:"reserves"`
}

// PositionData is one slot. Instructions is only set when the selected role
// carries a custom override.
type PositionData struct {
	Position     position.ID      `json:"position"`
	PlayerID     *player.ID       `json:"playerId"`
	Role         role.ID          `json:"role"`
	Duty         role.Duty        `json:"duty"`
	Instructions *instruction.Set `json:"instructions,omitempty"`
}

// Formation lists the positions of d in order.
func (d Data) Formation() []position.ID {
	out := make([]position.ID, 0, len(d.Positions))
	for _, p := range d.Positions {
		out = append(out, p.Position)
	}
	return out
}

// PlayerIDs returns every non-empty player id referenced by d.
func (d Data) PlayerIDs() []player.ID {
	out := make([]player.ID, 0, len(d.Positions)+len(d.Substitutes)+len(d.Reserves))
	add := func(id *player.ID) {
		if id != nil && *id != player.NoID {
			out = append(out, *id)
		}
	}
	for _, p := range d.Positions {
		add(p.PlayerID)
	}
	for _, id := range d.Substitutes {
		add(id)
	}
	for _, id := range d.Reserves {
		add(id)
	}
	return out
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := d
	out.Positions = make([]PositionData, len(d.Positions))
	for i, p := range d.Positions {
		p.PlayerID = cloneID(p.PlayerID)
		if p.Instructions != nil {
			set := *p.Instructions
			p.Instructions = &set
		}
		out.Positions[i] = p
	}
	out.Substitutes = cloneIDs(d.Substitutes)
	out.Reserves = cloneIDs(d.Reserves)
	return out
}

// ToData flattens t. Empty slots and bench entries become nulls.
func (t *Tactic) ToData() Data {
	out := Data{
		ID:          t.ID,
		Name:        t.Name,
		Positions:   make([]PositionData, 0, len(t.positions)),
		Substitutes: make([]*player.ID, 0, len(t.substitutes)),
		Reserves:    make([]*player.ID, 0, len(t.reserves)),
	}
	for _, p := range t.positions {
		row := PositionData{
			Position: p.id,
			PlayerID: idPtr(p.playerID),
		}
		if p.selected != nil {
			row.Role = p.selected.ID()
			row.Duty = p.selected.SelectedDuty()
			if p.selected.HasCustomInstructions() {
				set := p.selected.Instructions()
				row.Instructions = &set
			}
		}
		out.Positions = append(out.Positions, row)
	}
	for _, id := range t.substitutes {
		out.Substitutes = append(out.Substitutes, idPtr(id))
	}
	for _, id := range t.reserves {
		out.Reserves = append(out.Reserves, idPtr(id))
	}
	return out
}

// FromData rebuilds a tactic the way FromFormation does, then re-applies the
// stored role, duty, instructions and player of every slot. Null reserves are
// dropped, as are stored instructions the role no longer accepts.
func FromData(roles role.Source, d Data) *Tactic {
	t := FromFormation(roles, d.Formation())
	t.ID = d.ID
	t.Name = d.Name

	for i, row := range d.Positions {
		p := t.positions[i]
		if row.Role != "" {
			p.SetRole(row.Role)
		}
		if row.Duty != "" {
			p.SetDuty(row.Duty)
		}
		if row.Instructions != nil && p.selected != nil {
			p.selected.SetCustomInstructions(*row.Instructions)
		}
		if row.PlayerID != nil {
			p.AssignPlayerID(*row.PlayerID)
		}
	}

	t.substitutes = make([]player.ID, 0, len(d.Substitutes))
	for _, id := range d.Substitutes {
		if id == nil {
			t.substitutes = append(t.substitutes, player.NoID)
			continue
		}
		t.substitutes = append(t.substitutes, *id)
	}

	t.reserves = make([]player.ID, 0, len(d.Reserves))
	for _, id := range d.Reserves {
		if id != nil && *id != player.NoID {
			t.reserves = append(t.reserves, *id)
		}
	}
	return t
}

func idPtr(id player.ID) *player.ID {
	if id == player.NoID {
		return nil
	}
	return &id
}

func cloneID(id *player.ID) *player.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneIDs(ids []*player.ID) []*player.ID {
	if ids == nil {
		return nil
	}
	out := make([]*player.ID, len(ids))
	for i, id := range ids {
		out[i] = cloneID(id)
	}
	return out
}
