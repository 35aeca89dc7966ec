package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	// ListTopSkillByTeam returns up to limit players ordered by skill descending.
	ListTopSkillByTeam(ctx context.Context, teamID string, limit int) ([]Player, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	// DetachFromTeam moves players into the unassigned pool.
	DetachFromTeam(ctx context.Context, playerIDs []string) error
}
