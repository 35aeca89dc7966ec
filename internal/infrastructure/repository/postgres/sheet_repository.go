package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

const sheetSelectColumns = `id, public_id, team_public_id, name, slot_player_ids, created_at, updated_at`

type SheetRepository struct {
	db *sqlx.DB
}

func NewSheetRepository(db *sqlx.DB) *SheetRepository {
	return &SheetRepository{db: db}
}

func (r *SheetRepository) GetByID(ctx context.Context, sheetID string) (sheet.Sheet, bool, error) {
	query := `SELECT ` + sheetSelectColumns + ` FROM sheets WHERE public_id = $1`

	var row sheetTableModel
	if err := r.db.GetContext(ctx, &row, query, sheetID); err != nil {
		if isNotFound(err) {
			return sheet.Sheet{}, false, nil
		}
		return sheet.Sheet{}, false, fmt.Errorf("get sheet: %w", err)
	}
	return sheetFromRow(row), true, nil
}

func (r *SheetRepository) ListByTeam(ctx context.Context, teamID string) ([]sheet.Sheet, error) {
	query := `SELECT ` + sheetSelectColumns + ` FROM sheets WHERE team_public_id = $1 ORDER BY id`

	var rows []sheetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select sheets by team: %w", err)
	}

	out := make([]sheet.Sheet, 0, len(rows))
	for _, row := range rows {
		out = append(out, sheetFromRow(row))
	}
	return out, nil
}

func (r *SheetRepository) Create(ctx context.Context, item sheet.Sheet) error {
	query := `INSERT INTO sheets (public_id, team_public_id, name, slot_player_ids, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.TeamID, item.Name, slotsToArray(item.Slots), item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert sheet: %w", err)
	}
	return nil
}

func (r *SheetRepository) Update(ctx context.Context, item sheet.Sheet) error {
	query := `UPDATE sheets SET name = $2, slot_player_ids = $3, updated_at = $4 WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, slotsToArray(item.Slots), item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}
	return nil
}

func (r *SheetRepository) Delete(ctx context.Context, sheetID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sheets WHERE public_id = $1`, sheetID); err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	return nil
}
