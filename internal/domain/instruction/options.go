package instruction

// Frequency scales how often a player does something.
type Frequency string

const (
	FrequencyLess   Frequency = "less"
	FrequencyNormal Frequency = "normal"
	FrequencyMore   Frequency = "more"
)

type Tackling string

const (
	TacklingEaseOff Tackling = "ease_off"
	TacklingNormal  Tackling = "normal"
	TacklingHarder  Tackling = "harder"
)

type Marking string

const (
	MarkingZonal   Marking = "zonal"
	MarkingTighter Marking = "tighter"
)

type PassingStyle string

const (
	PassingShorter PassingStyle = "shorter"
	PassingNormal  PassingStyle = "normal"
	PassingDirect  PassingStyle = "direct"
)

type CrossFrom string

const (
	CrossFromByline CrossFrom = "byline"
	CrossFromDeep   CrossFrom = "deep"
	CrossFromWide   CrossFrom = "wide"
)

type CrossTarget string

const (
	CrossTargetNearPost CrossTarget = "near_post"
	CrossTargetCentre   CrossTarget = "centre"
	CrossTargetFarPost  CrossTarget = "far_post"
)

type Width string

const (
	WidthStayWider   Width = "stay_wider"
	WidthNormal      Width = "normal"
	WidthSitNarrower Width = "sit_narrower"
)

// DistributionArea is where a goalkeeper aims restarts.
type DistributionArea string

const (
	AreaCentreBacks           DistributionArea = "centre_backs"
	AreaFullBacks             DistributionArea = "full_backs"
	AreaPlaymaker             DistributionArea = "playmaker"
	AreaFlanks                DistributionArea = "flanks"
	AreaTargetMan             DistributionArea = "target_man"
	AreaOverOppositionDefence DistributionArea = "over_opposition_defence"
)

// DistributionType is how a goalkeeper restarts play.
type DistributionType string

const (
	TypeRollItOut      DistributionType = "roll_it_out"
	TypeThrowItLong    DistributionType = "throw_it_long"
	TypeTakeShortKicks DistributionType = "take_short_kicks"
	TypeTakeLongKicks  DistributionType = "take_long_kicks"
)
