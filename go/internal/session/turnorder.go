package session

import (
	"github.com/draftops/warroom/go/internal/models"
)

// TeamOnClock returns the 0-based index of the team on the clock for a
// given overall pick number. It is the only place turn order is
// computed; RecordPick derives the current team from this formula
// rather than stepping an index, so snake round boundaries can never
// drift.
//
// Linear: teams repeat 0..N-1 every round. Snake: odd rounds (0-based)
// reverse direction, producing the 1..N, N..1 pattern.
func TeamOnClock(pickNumber, numberOfTeams int, draftType models.DraftType) int {
	if pickNumber < 1 || numberOfTeams < 1 {
		return 0
	}
	posInRound := (pickNumber - 1) % numberOfTeams
	if draftType != models.DraftTypeSnake {
		return posInRound
	}
	round := (pickNumber - 1) / numberOfTeams
	if round%2 == 1 {
		return numberOfTeams - 1 - posInRound
	}
	return posInRound
}
