package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
)

const playerSelectColumns = `id, public_id, team_public_id, name, preferred_position,
skill, stamina_left, matches_played, goals_scored, assists_made, created_at, updated_at`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := `SELECT ` + playerSelectColumns + ` FROM players WHERE public_id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query := `SELECT ` + playerSelectColumns + ` FROM players WHERE public_id = ANY($1)`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(playerIDs)); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query := `SELECT ` + playerSelectColumns + ` FROM players WHERE team_public_id = $1 ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListTopSkillByTeam(ctx context.Context, teamID string, limit int) ([]player.Player, error) {
	query := `SELECT ` + playerSelectColumns + ` FROM players
WHERE team_public_id = $1 ORDER BY skill DESC, id LIMIT $2`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID, limit); err != nil {
		return nil, fmt.Errorf("select top players by team: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query := `INSERT INTO players (public_id, team_public_id, name, preferred_position,
skill, stamina_left, matches_played, goals_scored, assists_made)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.TeamID, item.Name, string(item.PreferredPosition),
		item.Skill, item.StaminaLeft, item.MatchesPlayed, item.GoalsScored, item.AssistsMade,
	); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	return updatePlayer(ctx, r.db, item)
}

func (r *PlayerRepository) DetachFromTeam(ctx context.Context, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}

	query := `UPDATE players SET team_public_id = '', updated_at = NOW() WHERE public_id = ANY($1)`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("detach players: %w", err)
	}
	return nil
}

// updatePlayer runs against either the pool or an open transaction.
func updatePlayer(ctx context.Context, execer sqlx.ExecerContext, item player.Player) error {
	query := `UPDATE players SET team_public_id = $2, name = $3, preferred_position = $4,
skill = $5, stamina_left = $6, matches_played = $7, goals_scored = $8, assists_made = $9,
updated_at = NOW()
WHERE public_id = $1`

	if _, err := execer.ExecContext(ctx, query,
		item.ID, item.TeamID, item.Name, string(item.PreferredPosition),
		item.Skill, item.StaminaLeft, item.MatchesPlayed, item.GoalsScored, item.AssistsMade,
	); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
