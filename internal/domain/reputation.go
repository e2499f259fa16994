package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Reputation scoring weights and bounds
const (
	ReputationMax               = 100
	ReputationMin               = 0
	ReputationNoShowPenalty     = -20
	ReputationLateCancelPenalty = -10
	ReputationCompletionBonus   = 2
	DefaultMinBookingScore      = 30
	DefaultRecoveryWindowDays   = 90
	DefaultRecoveryBonus        = 5
)

// ReputationCategory is a display label for a score
type ReputationCategory string

const (
	ReputationExcellent  ReputationCategory = "Excellent"
	ReputationGood       ReputationCategory = "Good"
	ReputationFair       ReputationCategory = "Fair"
	ReputationPoor       ReputationCategory = "Poor"
	ReputationRestricted ReputationCategory = "Restricted"
)

// ReputationCategories are ordered from best to worst
var ReputationCategories = []ReputationCategory{
	ReputationExcellent,
	ReputationGood,
	ReputationFair,
	ReputationPoor,
	ReputationRestricted,
}

// ErrUnknownCategory is returned when a reputation category name is not recognized
var ErrUnknownCategory = errors.New("domain: unknown reputation category")

// ParseReputationCategory matches a category name case-insensitively
func ParseReputationCategory(s string) (ReputationCategory, error) {
	for _, c := range ReputationCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ScoreRange returns the inclusive score bounds of the category
func (c ReputationCategory) ScoreRange() (lo, hi int) {
	switch c {
	case ReputationExcellent:
		return 90, ReputationMax
	case ReputationGood:
		return 70, 89
	case ReputationFair:
		return 50, 69
	case ReputationPoor:
		return 30, 49
	default:
		return ReputationMin, 29
	}
}

// CalculateReputationScore derives the 0..100 score from event counters
// and accumulated recovery points
func CalculateReputationScore(noShows, lateCancellations, completed, recoveryPoints int) int {
	return clampScore(RawReputationScore(noShows, lateCancellations, completed, recoveryPoints))
}

// RawReputationScore is the score before clamping to 0..100
func RawReputationScore(noShows, lateCancellations, completed, recoveryPoints int) int {
	return ReputationMax +
		noShows*ReputationNoShowPenalty +
		lateCancellations*ReputationLateCancelPenalty +
		completed*ReputationCompletionBonus +
		recoveryPoints
}

// CategoryForScore maps a score to its display category
func CategoryForScore(score int) ReputationCategory {
	switch {
	case score >= 90:
		return ReputationExcellent
	case score >= 70:
		return ReputationGood
	case score >= 50:
		return ReputationFair
	case score >= 30:
		return ReputationPoor
	default:
		return ReputationRestricted
	}
}

func clampScore(score int) int {
	if score < ReputationMin {
		return ReputationMin
	}
	if score > ReputationMax {
		return ReputationMax
	}
	return score
}
