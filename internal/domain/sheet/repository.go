package sheet

import "context"

// Repository exposes team sheet persistence operations.
type Repository interface {
	GetByID(ctx context.Context, sheetID string) (Sheet, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Sheet, error)
	Create(ctx context.Context, item Sheet) error
	Update(ctx context.Context, item Sheet) error
	Delete(ctx context.Context, sheetID string) error
}
