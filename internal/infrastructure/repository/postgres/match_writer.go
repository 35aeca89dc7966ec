package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
)

// MatchWriter lands one simulation commit in a single database transaction:
// the result row, its goal rows, and every touched team and player.
type MatchWriter struct {
	db *sqlx.DB
}

func NewMatchWriter(db *sqlx.DB) *MatchWriter {
	return &MatchWriter{db: db}
}

func (w *MatchWriter) CommitResult(ctx context.Context, commit match.Commit) (err error) {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match commit: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertMatch(ctx, tx, commit.Result); err != nil {
		return err
	}
	for _, goal := range commit.Goals {
		if err = insertGoal(ctx, tx, goal); err != nil {
			return err
		}
	}
	for _, item := range commit.Teams {
		if err = updateTeam(ctx, tx, item); err != nil {
			return err
		}
	}
	for _, item := range commit.Players {
		if err = updatePlayer(ctx, tx, item); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit match transaction: %w", err)
	}
	return nil
}

func insertMatch(ctx context.Context, tx *sqlx.Tx, result match.Result) error {
	query := `INSERT INTO matches (public_id, player_team_public_id, cpu_team_public_id, cpu_team_name,
player_score, cpu_score, player_average_skill, cpu_average_skill, coins_reward,
player_lineup_ids, cpu_lineup_ids, played_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := tx.ExecContext(ctx, query,
		result.ID, result.PlayerTeamID, result.CPUTeamID, result.CPUTeamName,
		result.PlayerScore, result.CPUScore, result.PlayerAverageSkill, result.CPUAverageSkill,
		result.CoinsReward, slotsToArray(result.PlayerLineup), slotsToArray(result.CPULineup), result.PlayedAt,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func insertGoal(ctx context.Context, tx *sqlx.Tx, goal match.Goal) error {
	query := `INSERT INTO goals (public_id, match_public_id, team_public_id, minute,
scorer_slot, scorer_player_public_id, assist_slot, assist_player_public_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := tx.ExecContext(ctx, query,
		goal.ID, goal.MatchID, goal.TeamID, goal.Minute,
		string(goal.ScorerSlot), goal.ScorerPlayerID, string(goal.AssistSlot), goal.AssistPlayerID,
	); err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}
