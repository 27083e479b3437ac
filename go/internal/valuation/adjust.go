package valuation

import (
	"math"

	"github.com/draftops/warroom/go/internal/models"
)

// Adjustment multipliers, applied in the fixed order documented on
// AdjustedValue.
const (
	customRankScalar   = 2.0
	targetMultiplier   = 1.2
	avoidMultiplier    = 0.6
	favoriteMultiplier = 1.1
	avoidTeamFactor    = 0.9
)

// AdjustedValue converts a base value into the single comparable score
// used for ranking. Pure: no state, no side effects.
//
// Order of application:
//  1. a custom rank replaces the base entirely (rank * 2; a better
//     rank yields a smaller number)
//  2. x1.2 target / x0.6 avoid (mutually exclusive)
//  3. x1.1 when the player's team is a favorite
//  4. x0.9 when the player's team is avoided
//  5. round to two decimals
func AdjustedValue(p models.Player, base float64, pref *models.PlayerPreference, b Biases) float64 {
	value := base
	if pref != nil {
		if pref.CustomRank != nil {
			value = float64(*pref.CustomRank) * customRankScalar
		}
		switch {
		case pref.IsTarget:
			value *= targetMultiplier
		case pref.IsAvoid:
			value *= avoidMultiplier
		}
	}
	if b.FavoriteTeams[p.Team] {
		value *= favoriteMultiplier
	}
	if b.AvoidTeams[p.Team] {
		value *= avoidTeamFactor
	}
	return round2(value)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
