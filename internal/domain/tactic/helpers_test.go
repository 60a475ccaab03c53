package tactic

import (
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
)

type stubSource struct {
	templates []role.Template
	missing   map[role.ID]bool
}

func (s stubSource) GetRolesForPosition(pos position.ID) []role.ID {
	var out []role.ID
	for _, t := range s.templates {
		if t.IsCompatible(pos) {
			out = append(out, t.ID)
		}
	}
	for id := range s.missing {
		out = append(out, id)
	}
	return out
}

func (s stubSource) GetRole(id role.ID) (role.Template, bool) {
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return role.Template{}, false
}

func testSource() stubSource {
	return stubSource{templates: []role.Template{
		{ID: "goalkeeper", Name: "Goalkeeper", Groups: []position.Group{position.GroupGoalkeeper}, Duties: []role.Duty{role.DutyDefend}},
		{ID: "sweeper_keeper", Name: "Sweeper Keeper", Groups: []position.Group{position.GroupGoalkeeper}, Duties: []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutySupport},
		{ID: "central_defender", Name: "Central Defender", Groups: []position.Group{position.GroupDCenter}, Duties: []role.Duty{role.DutyDefend, role.DutyStopper, role.DutyCover}},
		{ID: "full_back", Name: "Full Back", Groups: []position.Group{position.GroupDFlank}, Duties: []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutySupport},
		{ID: "wing_back", Name: "Wing Back", Groups: []position.Group{position.GroupDFlank, position.GroupDMFlank}, Duties: []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutySupport},
		{ID: "defensive_midfielder", Name: "Defensive Midfielder", Groups: []position.Group{position.GroupDMCenter}, Duties: []role.Duty{role.DutyDefend, role.DutySupport}},
		{ID: "central_midfielder", Name: "Central Midfielder", Groups: []position.Group{position.GroupMCenter}, Duties: []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutySupport},
		{ID: "wide_midfielder", Name: "Wide Midfielder", Groups: []position.Group{position.GroupMFlank}, Duties: []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutySupport},
		{ID: "attacking_midfielder", Name: "Attacking Midfielder", Groups: []position.Group{position.GroupAMCenter}, Duties: []role.Duty{role.DutySupport, role.DutyAttack}},
		{ID: "winger", Name: "Winger", Groups: []position.Group{position.GroupMFlank, position.GroupAMFlank}, Duties: []role.Duty{role.DutySupport, role.DutyAttack}},
		{ID: "advanced_forward", Name: "Advanced Forward", Groups: []position.Group{position.GroupStriker}, Duties: []role.Duty{role.DutyAttack}},
		{ID: "target_forward", Name: "Target Forward", Groups: []position.Group{position.GroupStriker}, Duties: []role.Duty{role.DutySupport, role.DutyAttack}, DefaultDuty: role.DutyAttack},
	}}
}

var fourFourTwo = []position.ID{
	position.GK,
	position.DL, position.DCL, position.DCR, position.DR,
	position.ML, position.MCL, position.MCR, position.MR,
	position.STCL, position.STCR,
}
