package memory

import (
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Andritany Ardhiyasa", Ability: 78},
		{ID: 2, Name: "Teja Paku Alam", Ability: 74},
		{ID: 3, Name: "Hansamu Yama", Ability: 76},
		{ID: 4, Name: "Nick Kuipers", Ability: 81},
		{ID: 5, Name: "Dusan Stevanovic", Ability: 75},
		{ID: 6, Name: "Ricky Fajrin", Ability: 72},
		{ID: 7, Name: "Rizky Ridho", Ability: 80},
		{ID: 8, Name: "Pratama Arhan", Ability: 77},
		{ID: 9, Name: "Maciej Gajos", Ability: 83},
		{ID: 10, Name: "Marc Klok", Ability: 84},
		{ID: 11, Name: "Bruno Moreira", Ability: 79},
		{ID: 12, Name: "Eber Bessa", Ability: 80},
		{ID: 13, Name: "Witan Sulaeman", Ability: 76},
		{ID: 14, Name: "Egy Maulana Vikri", Ability: 75},
		{ID: 15, Name: "Gustavo Almeida", Ability: 82},
		{ID: 16, Name: "David da Silva", Ability: 85},
		{ID: 17, Name: "Ramadhan Sananta", Ability: 73},
		{ID: 18, Name: "Dimas Drajad", Ability: 71},
		{ID: 19, Name: "Beckham Putra", Ability: 74},
		{ID: 20, Name: "Ricky Kambuaya", Ability: 77},
		{ID: 21, Name: "Yakob Sayuri", Ability: 72},
		{ID: 22, Name: "Asnawi Mangkualam", Ability: 78},
		{ID: 23, Name: "Ernando Ari", Ability: 76},
		{ID: 24, Name: "Marselino Ferdinan", Ability: 79},
	}
}

// SeedRoles returns the built-in role catalog with zone tables filled in for
// every compatible position and duty.
func SeedRoles() []role.Template {
	templates := []role.Template{
		{
			ID:           "goalkeeper",
			Name:         "Goalkeeper",
			Groups:       []position.Group{position.GroupGoalkeeper},
			Duties:       []role.Duty{role.DutyDefend},
			Instructions: keeperInstructions(),
		},
		{
			ID:           "sweeper_keeper",
			Name:         "Sweeper Keeper",
			Groups:       []position.Group{position.GroupGoalkeeper},
			Duties:       []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack},
			DefaultDuty:  role.DutySupport,
			Instructions: with(keeperInstructions(), func(t *instruction.Template) { t.PassingStyle = instruction.Optional(instruction.PassingShorter) }),
		},
		{
			ID:          "central_defender",
			Name:        "Central Defender",
			Groups:      []position.Group{position.GroupDCenter},
			Duties:      []role.Duty{role.DutyDefend, role.DutyStopper, role.DutyCover},
			DefaultDuty: role.DutyDefend,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.Dribbling = instruction.Off[instruction.Frequency]()
				t.RunsForward = instruction.Mandatory(instruction.FrequencyLess)
				t.Crossing = instruction.Off[instruction.Frequency]()
			}),
		},
		{
			ID:          "ball_playing_defender",
			Name:        "Ball Playing Defender",
			Groups:      []position.Group{position.GroupDCenter},
			Duties:      []role.Duty{role.DutyDefend, role.DutyStopper, role.DutyCover},
			DefaultDuty: role.DutyDefend,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.PassingStyle = instruction.Mandatory(instruction.PassingDirect)
				t.Crossing = instruction.Off[instruction.Frequency]()
			}),
		},
		{
			ID:          "libero",
			Name:        "Libero",
			Positions:   []position.ID{position.DC},
			Duties:      []role.Duty{role.DutyDefend, role.DutySupport},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.RoamFromPosition = instruction.Mandatory(true)
			}),
		},
		{
			ID:          "full_back",
			Name:        "Full Back",
			Groups:      []position.Group{position.GroupDFlank},
			Duties:      []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack, role.DutyAutomatic},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.CrossFrom = instruction.Optional(instruction.CrossFromDeep)
			}),
		},
		{
			ID:          "wing_back",
			Name:        "Wing Back",
			Groups:      []position.Group{position.GroupDFlank, position.GroupDMFlank},
			Duties:      []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack, role.DutyAutomatic},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.RunsForward = instruction.Mandatory(instruction.FrequencyMore)
				t.Width = instruction.Mandatory(instruction.WidthStayWider)
			}),
		},
		{
			ID:          "anchor",
			Name:        "Anchor",
			Groups:      []position.Group{position.GroupDMCenter},
			Duties:      []role.Duty{role.DutyDefend},
			DefaultDuty: role.DutyDefend,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.HoldPosition = instruction.Mandatory(true)
				t.RunsForward = instruction.Mandatory(instruction.FrequencyLess)
				t.Dribbling = instruction.Off[instruction.Frequency]()
			}),
		},
		{
			ID:           "defensive_midfielder",
			Name:         "Defensive Midfielder",
			Groups:       []position.Group{position.GroupDMCenter},
			Duties:       []role.Duty{role.DutyDefend, role.DutySupport},
			DefaultDuty:  role.DutyDefend,
			Instructions: outfieldInstructions(),
		},
		{
			ID:          "deep_lying_playmaker",
			Name:        "Deep Lying Playmaker",
			Groups:      []position.Group{position.GroupDMCenter, position.GroupMCenter},
			Duties:      []role.Duty{role.DutyDefend, role.DutySupport},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.HoldPosition = instruction.Mandatory(true)
				t.PassingStyle = instruction.Optional(instruction.PassingDirect)
			}),
		},
		{
			ID:           "central_midfielder",
			Name:         "Central Midfielder",
			Groups:       []position.Group{position.GroupMCenter},
			Duties:       []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack, role.DutyAutomatic},
			DefaultDuty:  role.DutySupport,
			Instructions: outfieldInstructions(),
		},
		{
			ID:     "box_to_box_midfielder",
			Name:   "Box To Box Midfielder",
			Groups: []position.Group{position.GroupMCenter},
			Duties: []role.Duty{role.DutySupport},
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.RunsForward = instruction.Mandatory(instruction.FrequencyMore)
			}),
		},
		{
			ID:          "wide_midfielder",
			Name:        "Wide Midfielder",
			Groups:      []position.Group{position.GroupMFlank},
			Duties:      []role.Duty{role.DutyDefend, role.DutySupport, role.DutyAttack, role.DutyAutomatic},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.CrossFrom = instruction.Optional(instruction.CrossFromWide)
			}),
		},
		{
			ID:          "winger",
			Name:        "Winger",
			Groups:      []position.Group{position.GroupMFlank, position.GroupAMFlank},
			Duties:      []role.Duty{role.DutySupport, role.DutyAttack},
			DefaultDuty: role.DutyAttack,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.Dribbling = instruction.Mandatory(instruction.FrequencyMore)
				t.Width = instruction.Mandatory(instruction.WidthStayWider)
				t.CrossFrom = instruction.Mandatory(instruction.CrossFromByline)
				t.HoldPosition = instruction.Off[bool]()
			}),
		},
		{
			ID:          "inside_forward",
			Name:        "Inside Forward",
			Groups:      []position.Group{position.GroupAMFlank},
			Duties:      []role.Duty{role.DutySupport, role.DutyAttack},
			DefaultDuty: role.DutyAttack,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.Width = instruction.Mandatory(instruction.WidthSitNarrower)
				t.Shooting = instruction.Optional(instruction.FrequencyMore)
				t.Crossing = instruction.Optional(instruction.FrequencyLess)
			}),
		},
		{
			ID:          "attacking_midfielder",
			Name:        "Attacking Midfielder",
			Groups:      []position.Group{position.GroupAMCenter},
			Duties:      []role.Duty{role.DutySupport, role.DutyAttack},
			DefaultDuty: role.DutySupport,
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.HoldPosition = instruction.Off[bool]()
			}),
		},
		{
			ID:     "shadow_striker",
			Name:   "Shadow Striker",
			Groups: []position.Group{position.GroupAMCenter},
			Duties: []role.Duty{role.DutyAttack},
			Instructions: with(outfieldInstructions(), func(t *instruction.Template) {
				t.RunsForward = instruction.Mandatory(instruction.FrequencyMore)
				t.MoveIntoChannels = instruction.Optional(true)
				t.HoldPosition = instruction.Off[bool]()
			}),
		},
		{
			ID:     "advanced_forward",
			Name:   "Advanced Forward",
			Groups: []position.Group{position.GroupStriker},
			Duties: []role.Duty{role.DutyAttack},
			Instructions: with(forwardInstructions(), func(t *instruction.Template) {
				t.MoveIntoChannels = instruction.Mandatory(true)
			}),
		},
		{
			ID:          "target_forward",
			Name:        "Target Forward",
			Groups:      []position.Group{position.GroupStriker},
			Duties:      []role.Duty{role.DutySupport, role.DutyAttack},
			DefaultDuty: role.DutyAttack,
			Instructions: with(forwardInstructions(), func(t *instruction.Template) {
				t.HoldPosition = instruction.Optional(true)
				t.Dribbling = instruction.Mandatory(instruction.FrequencyLess)
			}),
		},
		{
			ID:           "deep_lying_forward",
			Name:         "Deep Lying Forward",
			Groups:       []position.Group{position.GroupStriker},
			Duties:       []role.Duty{role.DutySupport, role.DutyAttack},
			DefaultDuty:  role.DutySupport,
			Instructions: forwardInstructions(),
		},
	}

	for i := range templates {
		templates[i].Zones = zoneTable(templates[i])
	}
	return templates
}

func with(t instruction.Template, edit func(*instruction.Template)) instruction.Template {
	edit(&t)
	return t
}

func keeperInstructions() instruction.Template {
	return instruction.Template{
		ClosingDown:      instruction.Off[instruction.Frequency](),
		Tackling:         instruction.Off[instruction.Tackling](),
		Marking:          instruction.Off[instruction.Marking](),
		PassingStyle:     instruction.Optional(instruction.PassingNormal),
		Dribbling:        instruction.Off[instruction.Frequency](),
		Shooting:         instruction.Off[instruction.Frequency](),
		Crossing:         instruction.Off[instruction.Frequency](),
		CrossFrom:        instruction.Off[instruction.CrossFrom](),
		CrossTarget:      instruction.Off[instruction.CrossTarget](),
		RunsForward:      instruction.Off[instruction.Frequency](),
		Width:            instruction.Off[instruction.Width](),
		HoldPosition:     instruction.Off[bool](),
		RoamFromPosition: instruction.Off[bool](),
		MoveIntoChannels: instruction.Off[bool](),
		DistributionArea: instruction.Optional(instruction.AreaCentreBacks),
		DistributionType: instruction.Optional(instruction.TypeRollItOut),
	}
}

func outfieldInstructions() instruction.Template {
	return instruction.Template{
		ClosingDown:      instruction.Optional(instruction.FrequencyNormal),
		Tackling:         instruction.Optional(instruction.TacklingNormal),
		Marking:          instruction.Optional(instruction.MarkingZonal),
		PassingStyle:     instruction.Optional(instruction.PassingNormal),
		Dribbling:        instruction.Optional(instruction.FrequencyNormal),
		Shooting:         instruction.Optional(instruction.FrequencyNormal),
		Crossing:         instruction.Optional(instruction.FrequencyNormal),
		CrossFrom:        instruction.Off[instruction.CrossFrom](),
		CrossTarget:      instruction.Optional(instruction.CrossTargetCentre),
		RunsForward:      instruction.Optional(instruction.FrequencyNormal),
		Width:            instruction.Optional(instruction.WidthNormal),
		HoldPosition:     instruction.Optional(false),
		RoamFromPosition: instruction.Optional(false),
		MoveIntoChannels: instruction.Off[bool](),
		DistributionArea: instruction.Off[instruction.DistributionArea](),
		DistributionType: instruction.Off[instruction.DistributionType](),
	}
}

func forwardInstructions() instruction.Template {
	return with(outfieldInstructions(), func(t *instruction.Template) {
		t.Tackling = instruction.Off[instruction.Tackling]()
		t.Marking = instruction.Off[instruction.Marking]()
		t.MoveIntoChannels = instruction.Optional(false)
		t.Shooting = instruction.Optional(instruction.FrequencyMore)
	})
}

// dutyReach lists line offsets from the home zone a duty pushes into.
var dutyReach = map[role.Duty][]struct {
	offset int
	level  position.Level
}{
	role.DutyDefend:    {{-1, position.LevelLow}},
	role.DutySupport:   {{1, position.LevelLow}},
	role.DutyAttack:    {{1, position.LevelMedium}, {2, position.LevelLow}},
	role.DutyStopper:   {{1, position.LevelMedium}},
	role.DutyCover:     {{-1, position.LevelMedium}},
	role.DutyAutomatic: {{-1, position.LevelLow}, {1, position.LevelLow}},
}

func zoneTable(t role.Template) role.ZoneTable {
	table := make(role.ZoneTable)
	for _, pos := range t.CompatiblePositions() {
		home, ok := position.HomeZone(pos)
		if !ok {
			continue
		}
		for _, duty := range t.Duties {
			var zones []role.ZoneInfluence
			add := func(line, lane int, level position.Level) {
				if z, ok := position.ZoneAt(line, lane); ok {
					zones = append(zones, role.ZoneInfluence{Zone: z, Level: level})
				}
			}
			add(home.Line(), home.Lane(), position.LevelHigh)
			add(home.Line(), home.Lane()-1, position.LevelMedium)
			add(home.Line(), home.Lane()+1, position.LevelMedium)
			for _, reach := range dutyReach[duty] {
				add(home.Line()+reach.offset, home.Lane(), reach.level)
			}
			table[role.ZoneKey{Position: pos, Duty: duty}] = zones
		}
	}
	return table
}
