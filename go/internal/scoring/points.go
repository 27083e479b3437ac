package scoring

import (
	"github.com/draftops/warroom/go/internal/models"
)

// regularSeasonWeeks converts season projections to a weekly estimate.
const regularSeasonWeeks = 17

// SeasonPoints computes a player's projected fantasy points over the
// full season from their stat bag, dispatching on position family.
func (r Rules) SeasonPoints(p models.Player) float64 {
	switch p.Position.Family() {
	case models.FamilyOffense:
		return r.offensePoints(p.Offense)
	case models.FamilyKicker:
		return r.kickerPoints(p.Kicker)
	case models.FamilyDefense:
		return r.defensePoints(p.Defense)
	default:
		return r.idpPoints(p.IDP)
	}
}

// WeeklyPoints is SeasonPoints averaged over the regular season. When
// the stat bag already carries a weekly-points projection from its
// source, that value wins.
func (r Rules) WeeklyPoints(p models.Player) float64 {
	switch p.Position.Family() {
	case models.FamilyOffense:
		if p.Offense != nil && p.Offense.WeeklyPoints != 0 {
			return p.Offense.WeeklyPoints
		}
	case models.FamilyKicker:
		if p.Kicker != nil && p.Kicker.WeeklyPoints != 0 {
			return p.Kicker.WeeklyPoints
		}
	case models.FamilyDefense:
		if p.Defense != nil && p.Defense.WeeklyPoints != 0 {
			return p.Defense.WeeklyPoints
		}
	default:
		if p.IDP != nil && p.IDP.WeeklyPoints != 0 {
			return p.IDP.WeeklyPoints
		}
	}
	return r.SeasonPoints(p) / regularSeasonWeeks
}

// BaseValue returns the position-appropriate base number the valuation
// engine adjusts: VORP for offensive skill positions, weekly points for
// everyone else. Offensive players without a VORP projection fall back
// to weekly points.
func (r Rules) BaseValue(p models.Player) float64 {
	if p.Position.Family() == models.FamilyOffense && p.Offense != nil && p.Offense.VORP != 0 {
		return p.Offense.VORP
	}
	return r.WeeklyPoints(p)
}

func (r Rules) offensePoints(s *models.OffenseStats) float64 {
	if s == nil {
		return 0
	}
	pts := s.PassingTDs*r.Passing.TDPoints +
		s.Interceptions*r.Passing.InterceptionPoints +
		s.RushingTDs*r.Rushing.TDPoints +
		s.ReceivingTDs*r.Receiving.TDPoints +
		s.Receptions*r.Receiving.ReceptionPoints
	if r.Passing.YardsPerPoint > 0 {
		pts += s.PassingYards / r.Passing.YardsPerPoint
	}
	if r.Rushing.YardsPerPoint > 0 {
		pts += s.RushingYards / r.Rushing.YardsPerPoint
	}
	if r.Receiving.YardsPerPoint > 0 {
		pts += s.ReceivingYards / r.Receiving.YardsPerPoint
	}
	for _, tier := range r.Bonuses {
		switch tier.Category {
		case "passing_yards":
			if s.PassingYards >= tier.Threshold {
				pts += tier.Points
			}
		case "rushing_yards":
			if s.RushingYards >= tier.Threshold {
				pts += tier.Points
			}
		case "receiving_yards":
			if s.ReceivingYards >= tier.Threshold {
				pts += tier.Points
			}
		}
	}
	return pts
}

func (r Rules) kickerPoints(s *models.KickerStats) float64 {
	if s == nil {
		return 0
	}
	missed := s.FieldGoalAtt - s.FieldGoals
	if missed < 0 {
		missed = 0
	}
	return s.FieldGoals*r.Kicker.FieldGoalPoints +
		missed*r.Kicker.MissedFGPoints +
		s.ExtraPoints*r.Kicker.ExtraPointPoints
}

func (r Rules) defensePoints(s *models.DefenseStats) float64 {
	if s == nil {
		return 0
	}
	pts := s.Sacks*r.Defense.SackPoints +
		(s.Interceptions+s.FumbleRecoveries)*r.Defense.TurnoverPoints +
		s.Touchdowns*r.Defense.TDPoints
	for _, tier := range r.Defense.PointsAllowedTiers {
		if s.PointsAllowedPG <= tier.Max {
			pts += tier.Points * regularSeasonWeeks
			break
		}
	}
	return pts
}

func (r Rules) idpPoints(s *models.IDPStats) float64 {
	if s == nil {
		return 0
	}
	return s.Tackles*r.IDP.TacklePoints +
		s.Sacks*r.IDP.SackPoints +
		(s.Interceptions+s.ForcedFumbles)*r.IDP.TurnoverPoints
}
