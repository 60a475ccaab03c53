package role

import (
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
)

// Instance is a per-slot mutable copy of a role template.
type Instance struct {
	template *Template
	position position.ID
	duty     Duty
	zones    map[position.Zone]position.Level
	custom   *instruction.Set
}

// NewInstance selects the template's first compatible position and its
// default duty.
func NewInstance(t Template) *Instance {
	tpl := t.Clone()
	r := &Instance{template: &tpl}
	if positions := tpl.CompatiblePositions(); len(positions) > 0 {
		r.position = positions[0]
	}
	r.duty = tpl.DefaultOrFirstDuty()
	r.recomputeZones()
	return r
}

func (r *Instance) ID() ID       { return r.template.ID }
func (r *Instance) Name() string { return r.template.Name }

// Template returns a copy of the definition this instance was built from.
func (r *Instance) Template() Template { return r.template.Clone() }

func (r *Instance) SelectedPosition() position.ID { return r.position }
func (r *Instance) SelectedDuty() Duty            { return r.duty }

func (r *Instance) AvailableDuties() []Duty {
	return append([]Duty(nil), r.template.Duties...)
}

func (r *Instance) IsCompatible(pos position.ID) bool {
	return r.template.IsCompatible(pos)
}

// SetSelectedPosition is a no-op returning false when pos is not compatible.
func (r *Instance) SetSelectedPosition(pos position.ID) bool {
	if !r.template.IsCompatible(pos) {
		return false
	}
	r.position = pos
	r.recomputeZones()
	return true
}

// SetSelectedDuty is a no-op returning false when d is not offered by the role.
func (r *Instance) SetSelectedDuty(d Duty) bool {
	if !r.template.HasDuty(d) {
		return false
	}
	r.duty = d
	r.recomputeZones()
	return true
}

// GetZoneAvailability returns LevelNone for zones the role does not touch.
func (r *Instance) GetZoneAvailability(z position.Zone) position.Level {
	level, ok := r.zones[z]
	if !ok {
		return position.LevelNone
	}
	return level
}

// Zones returns a snapshot of the current zone ownership.
func (r *Instance) Zones() map[position.Zone]position.Level {
	out := make(map[position.Zone]position.Level, len(r.zones))
	for z, l := range r.zones {
		out[z] = l
	}
	return out
}

// Instructions returns the custom override if set, otherwise the template
// defaults.
func (r *Instance) Instructions() instruction.Set {
	if r.custom != nil {
		return *r.custom
	}
	return r.template.Instructions.Resolve()
}

func (r *Instance) HasCustomInstructions() bool {
	return r.custom != nil
}

// SetCustomInstructions rejects sets that enable unavailable options or
// unlock required ones.
func (r *Instance) SetCustomInstructions(set instruction.Set) bool {
	if !r.template.Instructions.Accepts(set) {
		return false
	}
	custom := set
	r.custom = &custom
	return true
}

func (r *Instance) ClearCustomInstructions() {
	r.custom = nil
}

// Clone returns an independent copy. The template is immutable and shared.
func (r *Instance) Clone() *Instance {
	out := &Instance{
		template: r.template,
		position: r.position,
		duty:     r.duty,
		zones:    make(map[position.Zone]position.Level, len(r.zones)),
	}
	for z, l := range r.zones {
		out.zones[z] = l
	}
	if r.custom != nil {
		custom := *r.custom
		out.custom = &custom
	}
	return out
}

func (r *Instance) recomputeZones() {
	influences := r.template.Zones[ZoneKey{Position: r.position, Duty: r.duty}]
	zones := make(map[position.Zone]position.Level, len(influences))
	for _, inf := range influences {
		if inf.Level == position.LevelNone {
			continue
		}
		if inf.Level > zones[inf.Zone] {
			zones[inf.Zone] = inf.Level
		}
	}
	r.zones = zones
}
