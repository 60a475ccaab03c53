package role

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
)

var (
	ErrNoCompatiblePosition = errors.New("role has no compatible position")
	ErrNoDuties             = errors.New("role has no duties")
	ErrUnknownDefaultDuty   = errors.New("default duty is not an available duty")
)

// ID identifies a role template.
type ID string

// Duty modifies how a role is played.
type Duty string

const (
	DutyDefend    Duty = "Defend"
	DutySupport   Duty = "Support"
	DutyAttack    Duty = "Attack"
	DutyStopper   Duty = "Stopper"
	DutyCover     Duty = "Cover"
	DutyAutomatic Duty = "Automatic"
)

// ZoneKey selects one entry of a zone table.
type ZoneKey struct {
	Position position.ID
	Duty     Duty
}

type ZoneInfluence struct {
	Zone  position.Zone
	Level position.Level
}

// ZoneTable maps a (position, duty) pair to the zones a role influences.
type ZoneTable map[ZoneKey][]ZoneInfluence

// Template is the immutable catalog definition of a role.
type Template struct {
	ID           ID                   `validate:"required"`
	Name         string               `validate:"required"`
	Positions    []position.ID        `validate:"dive,required"`
	Groups       []position.Group     `validate:"dive,required"`
	Duties       []Duty               `validate:"required,min=1,dive,required"`
	DefaultDuty  Duty                 `validate:"omitempty"`
	Zones        ZoneTable            `validate:"-"`
	Instructions instruction.Template `validate:"-"`
}

func (t Template) Validate() error {
	if len(t.CompatiblePositions()) == 0 {
		return fmt.Errorf("%w: %s", ErrNoCompatiblePosition, t.ID)
	}
	if len(t.Duties) == 0 {
		return fmt.Errorf("%w: %s", ErrNoDuties, t.ID)
	}
	if t.DefaultDuty != "" && !t.HasDuty(t.DefaultDuty) {
		return fmt.Errorf("%w: role=%s duty=%s", ErrUnknownDefaultDuty, t.ID, t.DefaultDuty)
	}

	return nil
}

// CompatiblePositions lists explicit positions first, then members of the
// compatible groups, without duplicates.
func (t Template) CompatiblePositions() []position.ID {
	seen := make(map[position.ID]struct{})
	out := make([]position.ID, 0, len(t.Positions))
	add := func(id position.ID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range t.Positions {
		if id.Valid() {
			add(id)
		}
	}
	for _, group := range t.Groups {
		for _, id := range position.GetPositionsForGroup(group) {
			add(id)
		}
	}
	return out
}

func (t Template) IsCompatible(pos position.ID) bool {
	for _, id := range t.Positions {
		if id == pos {
			return true
		}
	}
	group := position.GetGroupForPosition(pos)
	if group == position.GroupNone {
		return false
	}
	for _, g := range t.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func (t Template) HasDuty(d Duty) bool {
	for _, duty := range t.Duties {
		if duty == d {
			return true
		}
	}
	return false
}

// DefaultOrFirstDuty falls back to the first listed duty when no explicit
// default is set.
func (t Template) DefaultOrFirstDuty() Duty {
	if t.DefaultDuty != "" && t.HasDuty(t.DefaultDuty) {
		return t.DefaultDuty
	}
	if len(t.Duties) == 0 {
		return ""
	}
	return t.Duties[0]
}

// Clone returns a copy sharing no slices or maps with t.
func (t Template) Clone() Template {
	out := t
	out.Positions = append([]position.ID(nil), t.Positions...)
	out.Groups = append([]position.Group(nil), t.Groups...)
	out.Duties = append([]Duty(nil), t.Duties...)
	if t.Zones != nil {
		out.Zones = make(ZoneTable, len(t.Zones))
		for k, v := range t.Zones {
			out.Zones[k] = append([]ZoneInfluence(nil), v...)
		}
	}
	return out
}
