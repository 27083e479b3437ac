package valuation

import (
	"github.com/draftops/warroom/go/internal/models"
)

// Biases aggregates the operator's team-level preferences. Team codes
// are normalized 2-3 letter codes.
type Biases struct {
	FavoriteTeams map[string]bool `json:"favorite_teams,omitempty"`
	AvoidTeams    map[string]bool `json:"avoid_teams,omitempty"`
}

// BaseValueFunc supplies the position-appropriate base value for a
// player, typically scoring.Rules.BaseValue.
type BaseValueFunc func(models.Player) float64

// Recommendation is one ranked candidate for the operator's next pick.
type Recommendation struct {
	Player        models.Player `json:"player"`
	AdjustedValue float64       `json:"adjusted_value"`
	CustomRank    *int          `json:"custom_rank,omitempty"`
	IsTarget      bool          `json:"is_target"`
	IsAvoid       bool          `json:"is_avoid"`
	FillsNeed     bool          `json:"fills_need"`
	Rationale     string        `json:"rationale"`
}
