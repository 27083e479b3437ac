package merge

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/draftops/warroom/go/internal/models"
)

type validRecord struct {
	RawRecord
	position models.Position
}

// Merge reconciles raw records from multiple sources into one canonical
// player per real-world player. Records missing a name or a resolvable
// position are dropped and counted, never abort the batch. Merging the
// same input twice yields the same pool and the same report.
func Merge(records []RawRecord) (map[uuid.UUID]models.Player, Report) {
	var report Report

	// Group by normalized name, preserving first-seen group order so
	// the conflict report is deterministic.
	groups := make(map[string][]validRecord)
	var order []string
	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			report.Dropped++
			log.Debug().Str("source", rec.Source).Msg("dropped record with empty name")
			continue
		}
		pos, ok := models.ParsePosition(rec.Position)
		if !ok {
			report.Dropped++
			log.Debug().Str("source", rec.Source).Str("name", rec.Name).Str("position", rec.Position).
				Msg("dropped record with unresolvable position")
			continue
		}
		key := NormalizeName(rec.Name)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], validRecord{RawRecord: rec, position: pos})
	}

	pool := make(map[uuid.UUID]models.Player, len(order))
	for _, key := range order {
		player, conflicts := resolveGroup(groups[key])
		pool[player.ID] = player
		report.Conflicts = append(report.Conflicts, conflicts...)
	}
	return pool, report
}

// resolveGroup folds duplicate records into the first one. Team is kept
// unless empty; position is never overwritten once set; numeric
// projections keep the larger value except IDP position rank, which
// keeps the smaller.
func resolveGroup(recs []validRecord) (models.Player, []Conflict) {
	base := recs[0]
	name := strings.TrimSpace(base.Name)
	team := normalizeTeam(base.Team)
	teamSource := base.Source
	position := base.position
	byeWeek := base.ByeWeek

	offense := cloneOffense(base.Offense)
	kicker := cloneKicker(base.Kicker)
	defense := cloneDefense(base.Defense)
	idp := cloneIDP(base.IDP)

	var conflicts []Conflict
	for _, rec := range recs[1:] {
		in := normalizeTeam(rec.Team)
		switch {
		case team == "" && in != "":
			team = in
			teamSource = rec.Source
		case in != "" && in != team:
			conflicts = append(conflicts, Conflict{
				PlayerName: name,
				Type:       ConflictTeamMismatch,
				Sources:    []string{teamSource, rec.Source},
			})
		}

		if rec.position != position {
			conflicts = append(conflicts, Conflict{
				PlayerName: name,
				Type:       ConflictPositionMismatch,
				Sources:    []string{base.Source, rec.Source},
			})
			// first non-empty position wins; skip stat folding across
			// mismatched families
			continue
		}

		if byeWeek == 0 {
			byeWeek = rec.ByeWeek
		}
		offense = mergeOffense(offense, rec.Offense)
		kicker = mergeKicker(kicker, rec.Kicker)
		defense = mergeDefense(defense, rec.Defense)
		idp = mergeIDP(idp, rec.IDP)
	}

	player := models.Player{
		ID:       models.PlayerID(name, team, position),
		Name:     name,
		Team:     team,
		Position: position,
		ByeWeek:  byeWeek,
	}
	// exactly one bag, matching the position family
	switch position.Family() {
	case models.FamilyOffense:
		if offense == nil {
			offense = &models.OffenseStats{}
		}
		player.Offense = offense
	case models.FamilyKicker:
		if kicker == nil {
			kicker = &models.KickerStats{}
		}
		player.Kicker = kicker
	case models.FamilyDefense:
		if defense == nil {
			defense = &models.DefenseStats{}
		}
		player.Defense = defense
	case models.FamilyIDP:
		if idp == nil {
			idp = &models.IDPStats{}
		}
		player.IDP = idp
	}

	for i := range conflicts {
		conflicts[i].PlayerID = player.ID
	}
	return player, conflicts
}

func normalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}

func cloneOffense(s *models.OffenseStats) *models.OffenseStats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneKicker(s *models.KickerStats) *models.KickerStats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneDefense(s *models.DefenseStats) *models.DefenseStats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneIDP(s *models.IDPStats) *models.IDPStats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func mergeOffense(base, in *models.OffenseStats) *models.OffenseStats {
	if in == nil {
		return base
	}
	if base == nil {
		return cloneOffense(in)
	}
	out := *base
	out.PassingYards = max(out.PassingYards, in.PassingYards)
	out.PassingTDs = max(out.PassingTDs, in.PassingTDs)
	out.Interceptions = max(out.Interceptions, in.Interceptions)
	out.RushingYards = max(out.RushingYards, in.RushingYards)
	out.RushingTDs = max(out.RushingTDs, in.RushingTDs)
	out.Receptions = max(out.Receptions, in.Receptions)
	out.ReceivingYards = max(out.ReceivingYards, in.ReceivingYards)
	out.ReceivingTDs = max(out.ReceivingTDs, in.ReceivingTDs)
	out.VORP = max(out.VORP, in.VORP)
	out.WeeklyPoints = max(out.WeeklyPoints, in.WeeklyPoints)
	return &out
}

func mergeKicker(base, in *models.KickerStats) *models.KickerStats {
	if in == nil {
		return base
	}
	if base == nil {
		return cloneKicker(in)
	}
	out := *base
	out.FieldGoals = max(out.FieldGoals, in.FieldGoals)
	out.FieldGoalAtt = max(out.FieldGoalAtt, in.FieldGoalAtt)
	out.ExtraPoints = max(out.ExtraPoints, in.ExtraPoints)
	out.WeeklyPoints = max(out.WeeklyPoints, in.WeeklyPoints)
	return &out
}

func mergeDefense(base, in *models.DefenseStats) *models.DefenseStats {
	if in == nil {
		return base
	}
	if base == nil {
		return cloneDefense(in)
	}
	out := *base
	out.Sacks = max(out.Sacks, in.Sacks)
	out.Interceptions = max(out.Interceptions, in.Interceptions)
	out.FumbleRecoveries = max(out.FumbleRecoveries, in.FumbleRecoveries)
	out.Touchdowns = max(out.Touchdowns, in.Touchdowns)
	out.PointsAllowedPG = max(out.PointsAllowedPG, in.PointsAllowedPG)
	out.WeeklyPoints = max(out.WeeklyPoints, in.WeeklyPoints)
	return &out
}

func mergeIDP(base, in *models.IDPStats) *models.IDPStats {
	if in == nil {
		return base
	}
	if base == nil {
		return cloneIDP(in)
	}
	out := *base
	out.Tackles = max(out.Tackles, in.Tackles)
	out.Sacks = max(out.Sacks, in.Sacks)
	out.Interceptions = max(out.Interceptions, in.Interceptions)
	out.ForcedFumbles = max(out.ForcedFumbles, in.ForcedFumbles)
	out.WeeklyPoints = max(out.WeeklyPoints, in.WeeklyPoints)
	// lower tier number means a better ranking
	switch {
	case out.PositionRank == 0:
		out.PositionRank = in.PositionRank
	case in.PositionRank != 0:
		out.PositionRank = min(out.PositionRank, in.PositionRank)
	}
	return &out
}
