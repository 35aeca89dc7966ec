package team

import "context"

// Repository exposes team persistence operations.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Team, error)
	ListAll(ctx context.Context) ([]Team, error)
	// FindCPUBySkill returns a CPU-controlled team generated at exactly the
	// given aggregate skill, if one exists.
	FindCPUBySkill(ctx context.Context, skill int) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, teamID string) error
}
