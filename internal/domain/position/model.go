package position

// ID identifies one pitch slot.
type ID string

const (
	GK ID = "GK"

	DL  ID = "DL"
	DCL ID = "DCL"
	DC  ID = "DC"
	DCR ID = "DCR"
	DR  ID = "DR"

	DML  ID = "DML"
	DMCL ID = "DMCL"
	DMC  ID = "DMC"
	DMCR ID = "DMCR"
	DMR  ID = "DMR"

	ML  ID = "ML"
	MCL ID = "MCL"
	MC  ID = "MC"
	MCR ID = "MCR"
	MR  ID = "MR"

	AML  ID = "AML"
	AMCL ID = "AMCL"
	AMC  ID = "AMC"
	AMCR ID = "AMCR"
	AMR  ID = "AMR"

	STCL ID = "STCL"
	STC  ID = "STC"
	STCR ID = "STCR"
)

// Group is the coarse bucket used by formation remapping.
type Group string

const (
	GroupNone       Group = "None"
	GroupGoalkeeper Group = "Goalkeeper"
	GroupDCenter    Group = "D_Center"
	GroupDFlank     Group = "D_Flank"
	GroupDMCenter   Group = "DM_Center"
	GroupDMFlank    Group = "DM_Flank"
	GroupMCenter    Group = "M_Center"
	GroupMFlank     Group = "M_Flank"
	GroupAMCenter   Group = "AM_Center"
	GroupAMFlank    Group = "AM_Flank"
	GroupStriker    Group = "Striker"
)

// Type is the line a position plays in.
type Type string

const (
	TypeNone                Type = "None"
	TypeGoalkeeper          Type = "Goalkeeper"
	TypeDefender            Type = "Defender"
	TypeDefensiveMidfielder Type = "DefensiveMidfielder"
	TypeMidfielder          Type = "Midfielder"
	TypeAttackingMidfielder Type = "AttackingMidfielder"
	TypeForward             Type = "Forward"
)

// Info is one row of the static position table.
type Info struct {
	ID    ID
	Group Group
	Type  Type
	// Line runs from 0 (own goal) to 5 (opponent box); Lane from 0 (left) to 4 (right).
	Line int
	Lane int
}

func (id ID) Valid() bool {
	_, ok := byID[id]
	return ok
}

func (id ID) Group() Group {
	return GetGroupForPosition(id)
}

func (id ID) Type() Type {
	return GetTypeForPosition(id)
}
