package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftops/warroom/go/internal/models"
	"github.com/draftops/warroom/go/internal/session"
)

// PickRepository persists the append-only pick log in Postgres so a
// session's rosters and pool can be reconstructed after a restart. The
// log is the sole source of truth; everything else is derived.
type PickRepository struct {
	pool *pgxpool.Pool
}

func NewPickRepository(pool *pgxpool.Pool) *PickRepository {
	return &PickRepository{pool: pool}
}

const createPicksTable = `
CREATE TABLE IF NOT EXISTS draft_picks (
	session_id  uuid        NOT NULL,
	pick_number integer     NOT NULL,
	team_index  integer     NOT NULL,
	player      jsonb,
	picked_at   timestamptz NOT NULL,
	PRIMARY KEY (session_id, pick_number)
)`

// Setup creates the pick-log table if it does not exist.
func (r *PickRepository) Setup(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createPicksTable); err != nil {
		return fmt.Errorf("failed to create draft_picks table: %w", err)
	}
	return nil
}

// AppendPick stores one pick-log entry.
func (r *PickRepository) AppendPick(ctx context.Context, sessionID uuid.UUID, pick models.DraftPick) error {
	var player []byte
	if pick.Player != nil {
		var err error
		player, err = json.Marshal(pick.Player)
		if err != nil {
			return fmt.Errorf("failed to marshal pick player: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO draft_picks (session_id, pick_number, team_index, player, picked_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sessionID, pick.PickNumber, pick.TeamIndex, player, pick.PickedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append pick %d: %w", pick.PickNumber, err)
	}
	return nil
}

// DeleteLastPick removes the highest-numbered pick for a session,
// mirroring an undo.
func (r *PickRepository) DeleteLastPick(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM draft_picks
		 WHERE session_id = $1
		   AND pick_number = (SELECT max(pick_number) FROM draft_picks WHERE session_id = $1)`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete last pick: %w", err)
	}
	return nil
}

// ListPicks returns the stored log in pick order.
func (r *PickRepository) ListPicks(ctx context.Context, sessionID uuid.UUID) ([]models.DraftPick, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pick_number, team_index, player, picked_at
		 FROM draft_picks
		 WHERE session_id = $1
		 ORDER BY pick_number`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		var pick models.DraftPick
		var player []byte
		if err := rows.Scan(&pick.PickNumber, &pick.TeamIndex, &player, &pick.PickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		if len(player) > 0 {
			pick.Player = &models.Player{}
			if err := json.Unmarshal(player, pick.Player); err != nil {
				return nil, fmt.Errorf("failed to unmarshal pick player: %w", err)
			}
		}
		picks = append(picks, pick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read picks: %w", err)
	}
	return picks, nil
}

// ClearPicks deletes a session's log, e.g. on settings reset.
func (r *PickRepository) ClearPicks(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM draft_picks WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear picks: %w", err)
	}
	return nil
}

// Rebuild replays a stored log through a freshly initialized session,
// reconstructing rosters and the available pool. PickedAt timestamps on
// the rebuilt session reflect replay time; the stored log keeps the
// originals.
func (r *PickRepository) Rebuild(ctx context.Context, sessionID uuid.UUID, sess *session.Session) error {
	picks, err := r.ListPicks(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, pick := range picks {
		if pick.Player == nil {
			if _, err := sess.SkipPick(pick.TeamIndex); err != nil {
				return fmt.Errorf("failed to replay skipped pick %d: %w", pick.PickNumber, err)
			}
			continue
		}
		if _, err := sess.RecordPick(pick.Player.ID, pick.TeamIndex); err != nil {
			return fmt.Errorf("failed to replay pick %d: %w", pick.PickNumber, err)
		}
	}
	return nil
}
