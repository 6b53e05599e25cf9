package domain

import "strings"

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// ValidKinds is the canonical set of accepted workout kind strings.
var ValidKinds = map[string]bool{
	string(KindRunning): true,
	string(KindCycling): true,
}

// ParseKind normalises a raw kind string. Unknown kinds return ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	if !ValidKinds[k] {
		return "", &UnknownKindError{Kind: s}
	}
	return Kind(k), nil
}

// Title returns the kind with its first letter upper-cased ("Running").
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Emoji returns the activity glyph shown in marker popups and list rows.
func (k Kind) Emoji() string {
	switch k {
	case KindRunning:
		return "🏃‍♂️"
	case KindCycling:
		return "🚴‍♀️"
	default:
		return "•"
	}
}

// MetricName is the name of the kind-specific input metric.
func (k Kind) MetricName() string {
	switch k {
	case KindRunning:
		return "cadence"
	case KindCycling:
		return "elevationGain"
	default:
		return "metric"
	}
}

type ValidationReason string

const (
	ReasonNotFinite   ValidationReason = "not_finite"
	ReasonNotPositive ValidationReason = "not_positive"
	ReasonOutOfRange  ValidationReason = "out_of_range"
)
