package instruction

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnreachableSetting = errors.New("required setting without a value")

// Availability is the authoring-time state of one instruction option.
type Availability int

const (
	Unavailable Availability = iota
	Available
	Required
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Required:
		return "required"
	default:
		return "unavailable"
	}
}

func ParseAvailability(v string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unavailable", "":
		return Unavailable, nil
	case "available":
		return Available, nil
	case "required":
		return Required, nil
	default:
		return Unavailable, fmt.Errorf("invalid availability %q", v)
	}
}

// Setting is the runtime form of an option: a nullable value plus a flag the
// UI reads to lock editing.
type Setting[T comparable] struct {
	Value    T    `json:"value"`
	Valid    bool `json:"valid"`
	Required bool `json:"required,omitempty"`
}

func Absent[T comparable]() Setting[T] {
	return Setting[T]{}
}

func Present[T comparable](value T, required bool) Setting[T] {
	return Setting[T]{Value: value, Valid: true, Required: required}
}

func (s Setting[T]) Get() (T, bool) {
	return s.Value, s.Valid
}

// Config is the tri-state authoring form of an option. Default is ignored
// when the option is Unavailable.
type Config[T comparable] struct {
	Availability Availability
	Default      T
}

func Off[T comparable]() Config[T] {
	return Config[T]{Availability: Unavailable}
}

func Optional[T comparable](def T) Config[T] {
	return Config[T]{Availability: Available, Default: def}
}

func Mandatory[T comparable](def T) Config[T] {
	return Config[T]{Availability: Required, Default: def}
}

// ToRuntime resolves a configuration into its runtime setting.
func ToRuntime[T comparable](c Config[T]) Setting[T] {
	var out Setting[T]
	Apply(c,
		func(value T, ok bool) {
			out.Value = value
			out.Valid = ok
		},
		func(required bool) {
			out.Required = required
		},
	)
	return out
}

// FromRuntime recovers the configuration a setting was resolved from.
func FromRuntime[T comparable](s Setting[T]) (Config[T], error) {
	switch {
	case !s.Valid && s.Required:
		return Config[T]{}, ErrUnreachableSetting
	case !s.Valid:
		return Config[T]{Availability: Unavailable}, nil
	case s.Required:
		return Config[T]{Availability: Required, Default: s.Value}, nil
	default:
		return Config[T]{Availability: Available, Default: s.Value}, nil
	}
}

// Apply pushes a configuration into a runtime target through two setters.
// setValue receives ok=false when the option must be absent.
func Apply[T comparable](c Config[T], setValue func(value T, ok bool), setRequired func(required bool)) {
	var zero T
	switch c.Availability {
	case Available:
		setValue(c.Default, true)
		setRequired(false)
	case Required:
		setValue(c.Default, true)
		setRequired(true)
	default:
		setValue(zero, false)
		setRequired(false)
	}
}

// conforms reports whether a user-edited setting respects its configuration:
// unavailable options stay absent and required ones stay locked to a value.
func conforms[T comparable](c Config[T], s Setting[T]) bool {
	switch c.Availability {
	case Unavailable:
		return !s.Valid && !s.Required
	case Required:
		return s.Valid && s.Required && s.Value == c.Default
	default:
		return !s.Required
	}
}
