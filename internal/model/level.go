package model

import (
	"fmt"
	"strings"
)

// Level is the three-step scale shared by all four scores.
//
// For the quality and professional scores a higher level is better. For the
// security-risk and social-visibility scores a higher level means more
// exposure. The scale itself carries no judgement; the ScoreResult it belongs
// to does.
type Level int

const (
	// LevelLow is the bottom of the scale and the starting point of every score.
	LevelLow Level = iota

	// LevelMedium is the middle of the scale.
	LevelMedium

	// LevelHigh is the top of the scale.
	LevelHigh
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// IsValid returns true if l is one of the defined levels.
func (l Level) IsValid() bool {
	return l >= LevelLow && l <= LevelHigh
}

// Escalate returns the higher of l and other.
// Security-risk levels only move upwards, never back down.
func (l Level) Escalate(other Level) Level {
	if other > l {
		return other
	}
	return l
}

// MarshalText encodes the level as its name so JSON reports stay readable.
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid level: %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name (case-insensitive).
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelLow, fmt.Errorf("unknown level %q", s)
	}
}
