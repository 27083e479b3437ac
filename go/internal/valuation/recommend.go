package valuation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/draftops/warroom/go/internal/models"
)

const noteExcerptLimit = 40

// Recommend ranks the available players against the user's current
// roster needs and returns the top candidates. An empty available set
// yields an empty list.
func Recommend(
	available []models.Player,
	roster []models.Player,
	prefs map[uuid.UUID]*models.PlayerPreference,
	biases Biases,
	settings models.DraftSettings,
	base BaseValueFunc,
	limit int,
) []Recommendation {
	positionCounts := make(map[models.Position]int, len(roster))
	flexCount := 0
	for _, p := range roster {
		positionCounts[p.Position]++
		if p.Position.FlexEligible() {
			flexCount++
		}
	}
	// flex capacity aggregates the dedicated skill slots plus FLEX
	flexMax := settings.RosterSlots[models.PositionRB] +
		settings.RosterSlots[models.PositionWR] +
		settings.RosterSlots[models.PositionTE] +
		settings.FlexSlots()

	recs := make([]Recommendation, 0, len(available))
	for _, p := range available {
		pref := prefs[p.ID]
		if pref != nil && pref.IsAvoid {
			continue
		}

		positionMax := settings.RosterSlots[p.Position]
		fillsNeed := positionCounts[p.Position] < positionMax
		flexRoom := p.Position.FlexEligible() && flexCount < flexMax

		pinned := pref != nil && (pref.IsTarget || pref.CustomRank != nil)
		if !pinned && !fillsNeed && !flexRoom {
			continue
		}

		rec := Recommendation{
			Player:        p,
			AdjustedValue: AdjustedValue(p, base(p), pref, biases),
			FillsNeed:     fillsNeed,
		}
		if pref != nil {
			rec.CustomRank = pref.CustomRank
			rec.IsTarget = pref.IsTarget
		}
		rec.Rationale = rationale(p, rec, pref, base, flexRoom)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.IsTarget != b.IsTarget {
			return a.IsTarget
		}
		if a.FillsNeed != b.FillsNeed {
			return a.FillsNeed
		}
		if a.AdjustedValue != b.AdjustedValue {
			return a.AdjustedValue > b.AdjustedValue
		}
		return a.Player.Name < b.Player.Name
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// rationale composes the human-readable explanation surfaced next to a
// recommendation.
func rationale(p models.Player, rec Recommendation, pref *models.PlayerPreference, base BaseValueFunc, flexRoom bool) string {
	var parts []string

	switch {
	case rec.CustomRank != nil:
		parts = append(parts, fmt.Sprintf("custom rank %d", *rec.CustomRank))
	case rec.IsTarget:
		parts = append(parts, "targeted")
	case p.Position.Family() == models.FamilyOffense && p.Offense != nil && p.Offense.VORP != 0:
		parts = append(parts, fmt.Sprintf("VORP %.1f", p.Offense.VORP))
	default:
		parts = append(parts, fmt.Sprintf("projects %.1f pts/wk", base(p)))
	}

	switch {
	case rec.FillsNeed:
		parts = append(parts, fmt.Sprintf("fills %s need", p.Position))
	case flexRoom:
		parts = append(parts, "flex option")
	default:
		parts = append(parts, fmt.Sprintf("%s full", p.Position))
	}

	if pref != nil && pref.Note != "" {
		parts = append(parts, fmt.Sprintf("note: %q", excerpt(pref.Note)))
	}
	return strings.Join(parts, "; ")
}

func excerpt(note string) string {
	runes := []rune(note)
	if len(runes) <= noteExcerptLimit {
		return note
	}
	return string(runes[:noteExcerptLimit]) + "…"
}
