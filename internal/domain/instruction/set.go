package instruction

// Set is the runtime instruction payload of one role instance. All fields are
// values, so copying a Set yields an independent copy.
type Set struct {
	ClosingDown      Setting[Frequency]        `json:"closingDown"`
	Tackling         Setting[Tackling]         `json:"tackling"`
	Marking          Setting[Marking]          `json:"marking"`
	PassingStyle     Setting[PassingStyle]     `json:"passingStyle"`
	Dribbling        Setting[Frequency]        `json:"dribbling"`
	Shooting         Setting[Frequency]        `json:"shooting"`
	Crossing         Setting[Frequency]        `json:"crossing"`
	CrossFrom        Setting[CrossFrom]        `json:"crossFrom"`
	CrossTarget      Setting[CrossTarget]      `json:"crossTarget"`
	RunsForward      Setting[Frequency]        `json:"runsForward"`
	Width            Setting[Width]            `json:"width"`
	HoldPosition     Setting[bool]             `json:"holdPosition"`
	RoamFromPosition Setting[bool]             `json:"roamFromPosition"`
	MoveIntoChannels Setting[bool]             `json:"moveIntoChannels"`
	DistributionArea Setting[DistributionArea] `json:"distributionArea"`
	DistributionType Setting[DistributionType] `json:"distributionType"`
}

// Template is the authoring form of a Set attached to a role template.
type Template struct {
	ClosingDown      Config[Frequency]
	Tackling         Config[Tackling]
	Marking          Config[Marking]
	PassingStyle     Config[PassingStyle]
	Dribbling        Config[Frequency]
	Shooting         Config[Frequency]
	Crossing         Config[Frequency]
	CrossFrom        Config[CrossFrom]
	CrossTarget      Config[CrossTarget]
	RunsForward      Config[Frequency]
	Width            Config[Width]
	HoldPosition     Config[bool]
	RoamFromPosition Config[bool]
	MoveIntoChannels Config[bool]
	DistributionArea Config[DistributionArea]
	DistributionType Config[DistributionType]
}

// Resolve returns the default runtime instructions for t.
func (t Template) Resolve() Set {
	return Set{
		ClosingDown:      ToRuntime(t.ClosingDown),
		Tackling:         ToRuntime(t.Tackling),
		Marking:          ToRuntime(t.Marking),
		PassingStyle:     ToRuntime(t.PassingStyle),
		Dribbling:        ToRuntime(t.Dribbling),
		Shooting:         ToRuntime(t.Shooting),
		Crossing:         ToRuntime(t.Crossing),
		CrossFrom:        ToRuntime(t.CrossFrom),
		CrossTarget:      ToRuntime(t.CrossTarget),
		RunsForward:      ToRuntime(t.RunsForward),
		Width:            ToRuntime(t.Width),
		HoldPosition:     ToRuntime(t.HoldPosition),
		RoamFromPosition: ToRuntime(t.RoamFromPosition),
		MoveIntoChannels: ToRuntime(t.MoveIntoChannels),
		DistributionArea: ToRuntime(t.DistributionArea),
		DistributionType: ToRuntime(t.DistributionType),
	}
}

// Accepts reports whether a user-edited Set stays within t's availability.
func (t Template) Accepts(s Set) bool {
	if s.DistributionArea.Valid && s.DistributionType.Valid &&
		DistributionConflict(s.DistributionArea.Value, s.DistributionType.Value) {
		return false
	}

	return conforms(t.ClosingDown, s.ClosingDown) &&
		conforms(t.Tackling, s.Tackling) &&
		conforms(t.Marking, s.Marking) &&
		conforms(t.PassingStyle, s.PassingStyle) &&
		conforms(t.Dribbling, s.Dribbling) &&
		conforms(t.Shooting, s.Shooting) &&
		conforms(t.Crossing, s.Crossing) &&
		conforms(t.CrossFrom, s.CrossFrom) &&
		conforms(t.CrossTarget, s.CrossTarget) &&
		conforms(t.RunsForward, s.RunsForward) &&
		conforms(t.Width, s.Width) &&
		conforms(t.HoldPosition, s.HoldPosition) &&
		conforms(t.RoamFromPosition, s.RoamFromPosition) &&
		conforms(t.MoveIntoChannels, s.MoveIntoChannels) &&
		conforms(t.DistributionArea, s.DistributionArea) &&
		conforms(t.DistributionType, s.DistributionType)
}

// TemplateFromSet is the inverse of Resolve, used by editing tools to turn a
// tuned runtime Set back into an authoring template.
func TemplateFromSet(s Set) (Template, error) {
	var (
		t    Template
		errs []error
	)
	t.ClosingDown = collect(s.ClosingDown, &errs)
	t.Tackling = collect(s.Tackling, &errs)
	t.Marking = collect(s.Marking, &errs)
	t.PassingStyle = collect(s.PassingStyle, &errs)
	t.Dribbling = collect(s.Dribbling, &errs)
	t.Shooting = collect(s.Shooting, &errs)
	t.Crossing = collect(s.Crossing, &errs)
	t.CrossFrom = collect(s.CrossFrom, &errs)
	t.CrossTarget = collect(s.CrossTarget, &errs)
	t.RunsForward = collect(s.RunsForward, &errs)
	t.Width = collect(s.Width, &errs)
	t.HoldPosition = collect(s.HoldPosition, &errs)
	t.RoamFromPosition = collect(s.RoamFromPosition, &errs)
	t.MoveIntoChannels = collect(s.MoveIntoChannels, &errs)
	t.DistributionArea = collect(s.DistributionArea, &errs)
	t.DistributionType = collect(s.DistributionType, &errs)
	if len(errs) > 0 {
		return Template{}, errs[0]
	}
	return t, nil
}

func collect[T comparable](s Setting[T], errs *[]error) Config[T] {
	c, err := FromRuntime(s)
	if err != nil {
		*errs = append(*errs, err)
	}
	return c
}
