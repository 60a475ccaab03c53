package position

var table = []Info{
	{ID: GK, Group: GroupGoalkeeper, Type: TypeGoalkeeper, Line: 0, Lane: 2},

	{ID: DL, Group: GroupDFlank, Type: TypeDefender, Line: 1, Lane: 0},
	{ID: DCL, Group: GroupDCenter, Type: TypeDefender, Line: 1, Lane: 1},
	{ID: DC, Group: GroupDCenter, Type: TypeDefender, Line: 1, Lane: 2},
	{ID: DCR, Group: GroupDCenter, Type: TypeDefender, Line: 1, Lane: 3},
	{ID: DR, Group: GroupDFlank, Type: TypeDefender, Line: 1, Lane: 4},

	{ID: DML, Group: GroupDMFlank, Type: TypeDefensiveMidfielder, Line: 2, Lane: 0},
	{ID: DMCL, Group: GroupDMCenter, Type: TypeDefensiveMidfielder, Line: 2, Lane: 1},
	{ID: DMC, Group: GroupDMCenter, Type: TypeDefensiveMidfielder, Line: 2, Lane: 2},
	{ID: DMCR, Group: GroupDMCenter, Type: TypeDefensiveMidfielder, Line: 2, Lane: 3},
	{ID: DMR, Group: GroupDMFlank, Type: TypeDefensiveMidfielder, Line: 2, Lane: 4},

	{ID: ML, Group: GroupMFlank, Type: TypeMidfielder, Line: 3, Lane: 0},
	{ID: MCL, Group: GroupMCenter, Type: TypeMidfielder, Line: 3, Lane: 1},
	{ID: MC, Group: GroupMCenter, Type: TypeMidfielder, Line: 3, Lane: 2},
	{ID: MCR, Group: GroupMCenter, Type: TypeMidfielder, Line: 3, Lane: 3},
	{ID: MR, Group: GroupMFlank, Type: TypeMidfielder, Line: 3, Lane: 4},

	{ID: AML, Group: GroupAMFlank, Type: TypeAttackingMidfielder, Line: 4, Lane: 0},
	{ID: AMCL, Group: GroupAMCenter, Type: TypeAttackingMidfielder, Line: 4, Lane: 1},
	{ID: AMC, Group: GroupAMCenter, Type: TypeAttackingMidfielder, Line: 4, Lane: 2},
	{ID: AMCR, Group: GroupAMCenter, Type: TypeAttackingMidfielder, Line: 4, Lane: 3},
	{ID: AMR, Group: GroupAMFlank, Type: TypeAttackingMidfielder, Line: 4, Lane: 4},

	{ID: STCL, Group: GroupStriker, Type: TypeForward, Line: 5, Lane: 1},
	{ID: STC, Group: GroupStriker, Type: TypeForward, Line: 5, Lane: 2},
	{ID: STCR, Group: GroupStriker, Type: TypeForward, Line: 5, Lane: 3},
}

// adjacentGroups lists, per group, the neighbouring groups a displaced player
// may fall back to when a formation no longer has their own group.
var adjacentGroups = map[Group][]Group{
	GroupGoalkeeper: nil,
	GroupDCenter:    {GroupDMCenter, GroupDFlank},
	GroupDFlank:     {GroupDMFlank, GroupMFlank, GroupDCenter},
	GroupDMCenter:   {GroupMCenter, GroupDCenter, GroupDMFlank},
	GroupDMFlank:    {GroupDFlank, GroupMFlank, GroupDMCenter},
	GroupMCenter:    {GroupDMCenter, GroupAMCenter, GroupMFlank},
	GroupMFlank:     {GroupAMFlank, GroupDMFlank, GroupMCenter},
	GroupAMCenter:   {GroupMCenter, GroupStriker, GroupAMFlank},
	GroupAMFlank:    {GroupMFlank, GroupStriker, GroupAMCenter},
	GroupStriker:    {GroupAMCenter, GroupAMFlank},
}

var (
	byID    = make(map[ID]Info, len(table))
	byGroup = make(map[Group][]ID)
)

func init() {
	for _, row := range table {
		byID[row.ID] = row
		byGroup[row.Group] = append(byGroup[row.Group], row.ID)
	}
}

// All returns every known position in pitch order.
func All() []ID {
	out := make([]ID, 0, len(table))
	for _, row := range table {
		out = append(out, row.ID)
	}
	return out
}

// Lookup returns the table row for id.
func Lookup(id ID) (Info, bool) {
	row, ok := byID[id]
	return row, ok
}

// GetGroupForPosition returns GroupNone for unknown ids.
func GetGroupForPosition(id ID) Group {
	row, ok := byID[id]
	if !ok {
		return GroupNone
	}
	return row.Group
}

// GetTypeForPosition returns TypeNone for unknown ids.
func GetTypeForPosition(id ID) Type {
	row, ok := byID[id]
	if !ok {
		return TypeNone
	}
	return row.Type
}

// GetPositionsForGroup returns the member positions of group in pitch order.
// Unknown groups (including GroupNone) return an empty slice.
func GetPositionsForGroup(group Group) []ID {
	return append([]ID(nil), byGroup[group]...)
}

// AdjacentGroups returns the fallback groups for group in preference order.
func AdjacentGroups(group Group) []Group {
	return append([]Group(nil), adjacentGroups[group]...)
}

// AllGroups returns every group that owns at least one position.
func AllGroups() []Group {
	seen := make(map[Group]struct{}, len(byGroup))
	out := make([]Group, 0, len(byGroup))
	for _, row := range table {
		if _, ok := seen[row.Group]; ok {
			continue
		}
		seen[row.Group] = struct{}{}
		out = append(out, row.Group)
	}
	return out
}
