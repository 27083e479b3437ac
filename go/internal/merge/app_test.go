package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftops/warroom/go/internal/models"
)

func offenseRecord(source, name, team, pos string, stats models.OffenseStats) RawRecord {
	return RawRecord{Source: source, Name: name, Team: team, Position: pos, Offense: &stats}
}

func TestMergeSuffixStrippedMatchWithTeamFillIn(t *testing.T) {
	pool, report := Merge([]RawRecord{
		offenseRecord("sourceA", "Derrick Henry", "BAL", "RB", models.OffenseStats{RushingYards: 1200}),
		offenseRecord("sourceB", "Derrick Henry Jr.", "", "RB", models.OffenseStats{RushingYards: 1100}),
	})

	require.Len(t, pool, 1)
	assert.Empty(t, report.Conflicts)
	assert.Zero(t, report.Dropped)

	for _, p := range pool {
		assert.Equal(t, "Derrick Henry", p.Name)
		assert.Equal(t, "BAL", p.Team)
		assert.Equal(t, models.PositionRB, p.Position)
		require.NotNil(t, p.Offense)
		assert.Equal(t, 1200.0, p.Offense.RushingYards)
	}
}

func TestMergeEmptyBaseTeamFilledByIncoming(t *testing.T) {
	pool, report := Merge([]RawRecord{
		offenseRecord("sourceA", "CeeDee Lamb", "", "WR", models.OffenseStats{}),
		offenseRecord("sourceB", "CeeDee Lamb", "dal", "WR", models.OffenseStats{}),
	})

	require.Len(t, pool, 1)
	assert.Empty(t, report.Conflicts)
	for _, p := range pool {
		assert.Equal(t, "DAL", p.Team)
	}
}

func TestMergeTeamMismatchKeepsBaseAndReportsConflict(t *testing.T) {
	pool, report := Merge([]RawRecord{
		offenseRecord("sourceA", "Saquon Barkley", "PHI", "RB", models.OffenseStats{}),
		offenseRecord("sourceB", "Saquon Barkley", "NYG", "RB", models.OffenseStats{}),
	})

	require.Len(t, pool, 1)
	require.Len(t, report.Conflicts, 1)
	conflict := report.Conflicts[0]
	assert.Equal(t, ConflictTeamMismatch, conflict.Type)
	assert.Equal(t, "Saquon Barkley", conflict.PlayerName)
	assert.ElementsMatch(t, []string{"sourceA", "sourceB"}, conflict.Sources)

	for _, p := range pool {
		assert.Equal(t, "PHI", p.Team)
		assert.Equal(t, p.ID, conflict.PlayerID)
	}
}

func TestMergePositionNeverOverwritten(t *testing.T) {
	pool, report := Merge([]RawRecord{
		offenseRecord("sourceA", "Taysom Hill", "NO", "TE", models.OffenseStats{Receptions: 30}),
		offenseRecord("sourceB", "Taysom Hill", "NO", "QB", models.OffenseStats{PassingYards: 500}),
	})

	require.Len(t, pool, 1)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictPositionMismatch, report.Conflicts[0].Type)
	for _, p := range pool {
		assert.Equal(t, models.PositionTE, p.Position)
		// stats from the mismatched family are not folded in
		require.NotNil(t, p.Offense)
		assert.Zero(t, p.Offense.PassingYards)
	}
}

func TestMergeKeepsLargerProjection(t *testing.T) {
	pool, _ := Merge([]RawRecord{
		offenseRecord("sourceA", "Justin Jefferson", "MIN", "WR", models.OffenseStats{ReceivingYards: 1400, Receptions: 95}),
		offenseRecord("sourceB", "Justin Jefferson", "MIN", "WR", models.OffenseStats{ReceivingYards: 1550, Receptions: 90, VORP: 80}),
	})

	require.Len(t, pool, 1)
	for _, p := range pool {
		require.NotNil(t, p.Offense)
		assert.Equal(t, 1550.0, p.Offense.ReceivingYards) // larger wins
		assert.Equal(t, 95.0, p.Offense.Receptions)       // larger wins
		assert.Equal(t, 80.0, p.Offense.VORP)             // empty on base adopts incoming
	}
}

func TestMergeIDPPositionRankKeepsSmaller(t *testing.T) {
	recA := RawRecord{Source: "sourceA", Name: "Micah Parsons", Team: "DAL", Position: "LB",
		IDP: &models.IDPStats{Tackles: 60, PositionRank: 3}}
	recB := RawRecord{Source: "sourceB", Name: "Micah Parsons", Team: "DAL", Position: "LB",
		IDP: &models.IDPStats{Tackles: 72, PositionRank: 1}}

	pool, _ := Merge([]RawRecord{recA, recB})

	require.Len(t, pool, 1)
	for _, p := range pool {
		require.NotNil(t, p.IDP)
		assert.Equal(t, 72.0, p.IDP.Tackles)
		assert.Equal(t, 1, p.IDP.PositionRank) // lower tier number wins
	}
}

func TestMergeDropsBadRecordsWithoutAborting(t *testing.T) {
	pool, report := Merge([]RawRecord{
		{Source: "sourceA", Name: "", Team: "KC", Position: "QB"},
		{Source: "sourceA", Name: "Ghost Player", Team: "KC", Position: "QUARTERBACK"},
		offenseRecord("sourceA", "Patrick Mahomes", "KC", "QB", models.OffenseStats{PassingYards: 4800}),
	})

	assert.Equal(t, 2, report.Dropped)
	assert.Len(t, pool, 1)
}

func TestMergeIsIdempotent(t *testing.T) {
	records := []RawRecord{
		offenseRecord("sourceA", "Derrick Henry", "BAL", "RB", models.OffenseStats{RushingYards: 1200, VORP: 40}),
		offenseRecord("sourceB", "Derrick Henry Jr.", "", "RB", models.OffenseStats{RushingYards: 1350}),
		offenseRecord("sourceA", "Saquon Barkley", "PHI", "RB", models.OffenseStats{RushingYards: 1500}),
		offenseRecord("sourceB", "Saquon Barkley", "NYG", "RB", models.OffenseStats{RushingYards: 1400}),
	}

	pool1, report1 := Merge(records)
	pool2, report2 := Merge(records)

	assert.Equal(t, pool1, pool2)
	assert.Equal(t, report1.Conflicts, report2.Conflicts)
	assert.Equal(t, report1.Dropped, report2.Dropped)
}

func TestMergeSingletonAdmittedDirectly(t *testing.T) {
	pool, report := Merge([]RawRecord{
		{Source: "sourceA", Name: "Justin Tucker", Team: "BAL", Position: "K",
			Kicker: &models.KickerStats{FieldGoals: 33, FieldGoalAtt: 36}},
	})

	require.Len(t, pool, 1)
	assert.Empty(t, report.Conflicts)
	for _, p := range pool {
		assert.Equal(t, models.PlayerID("Justin Tucker", "BAL", models.PositionK), p.ID)
		require.NotNil(t, p.Kicker)
		assert.Nil(t, p.Offense)
	}
}

func TestMergeStatBagMatchesPositionFamily(t *testing.T) {
	pool, _ := Merge([]RawRecord{
		{Source: "sourceA", Name: "49ers", Team: "SF", Position: "DST"},
	})

	for _, p := range pool {
		// a defense with no stats still carries an empty defense bag
		require.NotNil(t, p.Defense)
		assert.Nil(t, p.Offense)
		assert.Nil(t, p.Kicker)
		assert.Nil(t, p.IDP)
	}
}
