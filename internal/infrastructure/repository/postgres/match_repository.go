package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
)

const matchSelectColumns = `id, public_id, player_team_public_id, cpu_team_public_id, cpu_team_name,
player_score, cpu_score, player_average_skill, cpu_average_skill, coins_reward,
player_lineup_ids, cpu_lineup_ids, played_at, created_at`

const goalSelectColumns = `id, public_id, match_public_id, team_public_id, minute,
scorer_slot, scorer_player_public_id, assist_slot, assist_player_public_id`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Result, []match.Goal, bool, error) {
	query := `SELECT ` + matchSelectColumns + ` FROM matches WHERE public_id = $1`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Result{}, nil, false, nil
		}
		return match.Result{}, nil, false, fmt.Errorf("get match: %w", err)
	}

	goalQuery := `SELECT ` + goalSelectColumns + ` FROM goals WHERE match_public_id = $1 ORDER BY minute, id`

	var goalRows []goalTableModel
	if err := r.db.SelectContext(ctx, &goalRows, goalQuery, matchID); err != nil {
		return match.Result{}, nil, false, fmt.Errorf("select match goals: %w", err)
	}

	goals := make([]match.Goal, 0, len(goalRows))
	for _, g := range goalRows {
		goals = append(goals, goalFromRow(g))
	}
	return matchFromRow(row), goals, true, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Result, error) {
	query := `SELECT ` + matchSelectColumns + ` FROM matches
WHERE player_team_public_id = $1 OR cpu_team_public_id = $1
ORDER BY played_at DESC, id DESC`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select matches by team: %w", err)
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) ListAll(ctx context.Context) ([]match.Result, error) {
	query := `SELECT ` + matchSelectColumns + ` FROM matches ORDER BY played_at DESC, id DESC`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select all matches: %w", err)
	}
	return matchesFromRows(rows), nil
}

func matchesFromRows(rows []matchTableModel) []match.Result {
	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out
}
