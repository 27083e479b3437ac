package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules drives weekly-point computation for every position family.
type Rules struct {
	Passing struct {
		YardsPerPoint      float64 `yaml:"yards_per_point"`
		TDPoints           float64 `yaml:"td_points"`
		InterceptionPoints float64 `yaml:"interception_points"`
	} `yaml:"passing"`
	Rushing struct {
		YardsPerPoint float64 `yaml:"yards_per_point"`
		TDPoints      float64 `yaml:"td_points"`
	} `yaml:"rushing"`
	Receiving struct {
		YardsPerPoint   float64 `yaml:"yards_per_point"`
		TDPoints        float64 `yaml:"td_points"`
		ReceptionPoints float64 `yaml:"reception_points"` // PPR value
	} `yaml:"receiving"`
	Bonuses []BonusTier `yaml:"bonuses,omitempty"`
	Kicker  struct {
		FieldGoalPoints  float64 `yaml:"field_goal_points"`
		MissedFGPoints   float64 `yaml:"missed_fg_points"`
		ExtraPointPoints float64 `yaml:"extra_point_points"`
	} `yaml:"kicker"`
	Defense struct {
		SackPoints         float64              `yaml:"sack_points"`
		TurnoverPoints     float64              `yaml:"turnover_points"`
		TDPoints           float64              `yaml:"td_points"`
		PointsAllowedTiers []PointsAllowedTier  `yaml:"points_allowed_tiers,omitempty"`
	} `yaml:"defense"`
	IDP struct {
		TacklePoints   float64 `yaml:"tackle_points"`
		SackPoints     float64 `yaml:"sack_points"`
		TurnoverPoints float64 `yaml:"turnover_points"`
	} `yaml:"idp"`
}

// BonusTier awards extra points once a season projection crosses a
// threshold. Category is one of passing_yards, rushing_yards,
// receiving_yards.
type BonusTier struct {
	Category  string  `yaml:"category"`
	Threshold float64 `yaml:"threshold"`
	Points    float64 `yaml:"points"`
}

// PointsAllowedTier maps a defense's points-allowed-per-game ceiling to
// a weekly point award. Tiers are evaluated in order; first match wins.
type PointsAllowedTier struct {
	Max    float64 `yaml:"max"`
	Points float64 `yaml:"points"`
}

// DefaultRules returns a standard-scoring baseline (1 pt / 25 passing
// yards, 1 pt / 10 rushing or receiving yards, half-PPR).
func DefaultRules() Rules {
	var r Rules
	r.Passing.YardsPerPoint = 25
	r.Passing.TDPoints = 4
	r.Passing.InterceptionPoints = -2
	r.Rushing.YardsPerPoint = 10
	r.Rushing.TDPoints = 6
	r.Receiving.YardsPerPoint = 10
	r.Receiving.TDPoints = 6
	r.Receiving.ReceptionPoints = 0.5
	r.Kicker.FieldGoalPoints = 3
	r.Kicker.MissedFGPoints = -1
	r.Kicker.ExtraPointPoints = 1
	r.Defense.SackPoints = 1
	r.Defense.TurnoverPoints = 2
	r.Defense.TDPoints = 6
	r.Defense.PointsAllowedTiers = []PointsAllowedTier{
		{Max: 6, Points: 8},
		{Max: 13, Points: 5},
		{Max: 20, Points: 2},
		{Max: 27, Points: 0},
	}
	r.IDP.TacklePoints = 1
	r.IDP.SackPoints = 2
	r.IDP.TurnoverPoints = 2
	return r
}

// LoadRules reads scoring rules from a YAML file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read scoring rules: %w", err)
	}
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse scoring rules: %w", err)
	}
	return rules, nil
}
