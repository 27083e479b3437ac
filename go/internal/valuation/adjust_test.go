package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftops/warroom/go/internal/models"
)

func intPtr(n int) *int { return &n }

func TestAdjustedValueCustomRankReplacesBase(t *testing.T) {
	p := models.Player{Team: "KC"}
	pref := &models.PlayerPreference{CustomRank: intPtr(5)}

	// rank 5 -> 5 * 2 = 10.0 regardless of base
	assert.Equal(t, 10.0, AdjustedValue(p, 87.3, pref, Biases{}))
}

func TestAdjustedValueTargetIncreases(t *testing.T) {
	p := models.Player{Team: "KC"}
	base := 50.0

	unmarked := AdjustedValue(p, base, nil, Biases{})
	targeted := AdjustedValue(p, base, &models.PlayerPreference{IsTarget: true}, Biases{})

	assert.Greater(t, targeted, unmarked)
	assert.Equal(t, 60.0, targeted)
}

func TestAdjustedValueAvoidDecreases(t *testing.T) {
	p := models.Player{Team: "KC"}
	base := 50.0

	unmarked := AdjustedValue(p, base, nil, Biases{})
	avoided := AdjustedValue(p, base, &models.PlayerPreference{IsAvoid: true}, Biases{})

	assert.Less(t, avoided, unmarked)
	assert.Equal(t, 30.0, avoided)
}

func TestAdjustedValueTeamBiases(t *testing.T) {
	p := models.Player{Team: "KC"}

	favored := AdjustedValue(p, 50, nil, Biases{FavoriteTeams: map[string]bool{"KC": true}})
	assert.Equal(t, 55.0, favored)

	shunned := AdjustedValue(p, 50, nil, Biases{AvoidTeams: map[string]bool{"KC": true}})
	assert.Equal(t, 45.0, shunned)
}

func TestAdjustedValueAppliesInFixedOrder(t *testing.T) {
	p := models.Player{Team: "KC"}
	pref := &models.PlayerPreference{CustomRank: intPtr(10), IsTarget: true}
	biases := Biases{
		FavoriteTeams: map[string]bool{"KC": true},
		AvoidTeams:    map[string]bool{"KC": true},
	}

	// 10*2 = 20, *1.2 = 24, *1.1 = 26.4, *0.9 = 23.76
	assert.Equal(t, 23.76, AdjustedValue(p, 999, pref, biases))
}

func TestAdjustedValueRoundsToTwoDecimals(t *testing.T) {
	p := models.Player{Team: "SF"}
	pref := &models.PlayerPreference{IsTarget: true}

	// 10.111 * 1.2 = 12.1332 -> 12.13
	assert.Equal(t, 12.13, AdjustedValue(p, 10.111, pref, Biases{}))
}

func TestAdjustedValueIsPure(t *testing.T) {
	p := models.Player{Team: "SF"}
	pref := &models.PlayerPreference{IsTarget: true}
	biases := Biases{FavoriteTeams: map[string]bool{"SF": true}}

	first := AdjustedValue(p, 33.3, pref, biases)
	second := AdjustedValue(p, 33.3, pref, biases)
	assert.Equal(t, first, second)
	assert.True(t, pref.IsTarget, "preference must not be mutated")
}
