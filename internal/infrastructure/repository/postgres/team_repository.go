package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futsalverse/futsal-manager/internal/domain/team"
)

const teamSelectColumns = `id, public_id, owner_id, name, wins, draws, losses, coins, cpu_skill, created_at, updated_at`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query := `SELECT ` + teamSelectColumns + ` FROM teams WHERE public_id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]team.Team, error) {
	query := `SELECT ` + teamSelectColumns + ` FROM teams WHERE owner_id = $1 ORDER BY id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("select teams by owner: %w", err)
	}
	return teamsFromRows(rows), nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query := `SELECT ` + teamSelectColumns + ` FROM teams ORDER BY id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select all teams: %w", err)
	}
	return teamsFromRows(rows), nil
}

func (r *TeamRepository) FindCPUBySkill(ctx context.Context, skill int) (team.Team, bool, error) {
	query := `SELECT ` + teamSelectColumns + ` FROM teams
WHERE owner_id = '' AND cpu_skill = $1 ORDER BY id LIMIT 1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, skill); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("find cpu team by skill: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query := `INSERT INTO teams (public_id, owner_id, name, wins, draws, losses, coins, cpu_skill)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Wins, item.Draws, item.Losses, item.Coins, item.CPUSkill,
	); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	return updateTeam(ctx, r.db, item)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE public_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func updateTeam(ctx context.Context, execer sqlx.ExecerContext, item team.Team) error {
	query := `UPDATE teams SET owner_id = $2, name = $3, wins = $4, draws = $5, losses = $6,
coins = $7, cpu_skill = $8, updated_at = NOW()
WHERE public_id = $1`

	if _, err := execer.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Wins, item.Draws, item.Losses, item.Coins, item.CPUSkill,
	); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func teamsFromRows(rows []teamTableModel) []team.Team {
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out
}
