package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateReputationScore(t *testing.T) {
	tests := []struct {
		name                                      string
		noShows, lateCancels, completed, recovery int
		want                                      int
	}{
		{name: "new customer", want: 100},
		{name: "one no-show", noShows: 1, want: 80},
		{name: "no-show and late cancel", noShows: 1, lateCancels: 1, want: 70},
		{name: "completions offset penalties", noShows: 1, completed: 5, want: 90},
		{name: "ten no-shows floor at zero", noShows: 10, want: 0},
		{name: "hundred completions cap at 100", completed: 100, want: 100},
		{name: "recovery points", noShows: 2, recovery: 5, want: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateReputationScore(tt.noShows, tt.lateCancels, tt.completed, tt.recovery))
		})
	}
}

func TestCalculateReputationScore_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		score := CalculateReputationScore(rng.Intn(20), rng.Intn(20), rng.Intn(200), rng.Intn(100))
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestCategoryForScore(t *testing.T) {
	assert.Equal(t, ReputationExcellent, CategoryForScore(100))
	assert.Equal(t, ReputationExcellent, CategoryForScore(90))
	assert.Equal(t, ReputationGood, CategoryForScore(89))
	assert.Equal(t, ReputationGood, CategoryForScore(70))
	assert.Equal(t, ReputationFair, CategoryForScore(50))
	assert.Equal(t, ReputationPoor, CategoryForScore(30))
	assert.Equal(t, ReputationRestricted, CategoryForScore(29))
	assert.Equal(t, ReputationRestricted, CategoryForScore(0))
}

func TestOwner_RefreshReputation(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	o := &Owner{ReputationScore: 100, NoShowCount: 2, CompletedAppointmentCount: 1}

	o.RefreshReputation(now)

	assert.Equal(t, 62, o.ReputationScore)
	assert.Equal(t, now, *o.LastReputationUpdate)
}

func TestOwner_RecoveryGrant(t *testing.T) {
	// 2 неявки: 60 -> 65
	o := &Owner{NoShowCount: 2}
	assert.Equal(t, 5, o.RecoveryGrant(65))

	// счет ниже нуля: бонус должен поднять и отрицательную часть
	o = &Owner{NoShowCount: 6}
	grant := o.RecoveryGrant(5)
	o.RecoveryPoints += grant
	assert.Equal(t, 5, o.DerivedReputationScore())
}

func TestReputationCategory_ScoreRange(t *testing.T) {
	// диапазоны покрывают 0..100 без пропусков и согласованы с CategoryForScore
	for score := ReputationMin; score <= ReputationMax; score++ {
		category := CategoryForScore(score)
		lo, hi := category.ScoreRange()
		assert.True(t, score >= lo && score <= hi, "score=%d category=%s", score, category)
	}
}

func TestParseReputationCategory(t *testing.T) {
	got, err := ParseReputationCategory(" poor ")
	assert.NoError(t, err)
	assert.Equal(t, ReputationPoor, got)

	got, err = ParseReputationCategory("EXCELLENT")
	assert.NoError(t, err)
	assert.Equal(t, ReputationExcellent, got)

	_, err = ParseReputationCategory("vip")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
