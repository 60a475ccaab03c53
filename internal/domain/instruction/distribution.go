package instruction

// DistributionConstraint lists what becomes unavailable once a selection is made.
type DistributionConstraint struct {
	DisableAreas []DistributionArea
	DisableTypes []DistributionType
}

// distributionConstraints is keyed by either a DistributionArea or a
// DistributionType value.
var distributionConstraints = map[string]DistributionConstraint{
	string(AreaCentreBacks): {
		DisableTypes: []DistributionType{TypeThrowItLong, TypeTakeLongKicks},
	},
	string(AreaFullBacks): {
		DisableTypes: []DistributionType{TypeTakeLongKicks},
	},
	string(AreaTargetMan): {
		DisableTypes: []DistributionType{TypeRollItOut, TypeTakeShortKicks},
	},
	string(AreaOverOppositionDefence): {
		DisableTypes: []DistributionType{TypeRollItOut, TypeTakeShortKicks, TypeThrowItLong},
	},
	string(TypeRollItOut): {
		DisableAreas: []DistributionArea{AreaTargetMan, AreaOverOppositionDefence},
	},
	string(TypeTakeShortKicks): {
		DisableAreas: []DistributionArea{AreaTargetMan, AreaOverOppositionDefence},
	},
	string(TypeThrowItLong): {
		DisableAreas: []DistributionArea{AreaCentreBacks, AreaOverOppositionDefence},
	},
	string(TypeTakeLongKicks): {
		DisableAreas: []DistributionArea{AreaCentreBacks, AreaFullBacks},
	},
}

var (
	allAreas = []DistributionArea{AreaCentreBacks, AreaFullBacks, AreaPlaymaker, AreaFlanks, AreaTargetMan, AreaOverOppositionDefence}
	allTypes = []DistributionType{TypeRollItOut, TypeThrowItLong, TypeTakeShortKicks, TypeTakeLongKicks}
)

// ConstraintFor returns the constraint attached to a selection, if any.
func ConstraintFor(selection string) (DistributionConstraint, bool) {
	c, ok := distributionConstraints[selection]
	if !ok {
		return DistributionConstraint{}, false
	}
	return DistributionConstraint{
		DisableAreas: append([]DistributionArea(nil), c.DisableAreas...),
		DisableTypes: append([]DistributionType(nil), c.DisableTypes...),
	}, true
}

// AllowedDistribution returns the areas and types still selectable once the
// given selections are in place. Selections themselves stay allowed.
func AllowedDistribution(selections ...string) ([]DistributionArea, []DistributionType) {
	disabledAreas := make(map[DistributionArea]bool)
	disabledTypes := make(map[DistributionType]bool)
	for _, sel := range selections {
		c := distributionConstraints[sel]
		for _, a := range c.DisableAreas {
			disabledAreas[a] = true
		}
		for _, t := range c.DisableTypes {
			disabledTypes[t] = true
		}
	}

	areas := make([]DistributionArea, 0, len(allAreas))
	for _, a := range allAreas {
		if !disabledAreas[a] {
			areas = append(areas, a)
		}
	}
	types := make([]DistributionType, 0, len(allTypes))
	for _, t := range allTypes {
		if !disabledTypes[t] {
			types = append(types, t)
		}
	}
	return areas, types
}

// DistributionConflict reports whether an area and a type exclude each other.
func DistributionConflict(area DistributionArea, typ DistributionType) bool {
	for _, t := range distributionConstraints[string(area)].DisableTypes {
		if t == typ {
			return true
		}
	}
	for _, a := range distributionConstraints[string(typ)].DisableAreas {
		if a == area {
			return true
		}
	}
	return false
}
