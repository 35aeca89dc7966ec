package match

import (
	"context"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
)

// Repository reads persisted match results.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Result, []Goal, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Result, error)
	ListAll(ctx context.Context) ([]Result, error)
}

// Commit bundles everything one simulation mutates. A Writer persists the
// whole bundle atomically: either the result, its goals, and every team and
// player update land together, or none of them do.
type Commit struct {
	Result  Result
	Goals   []Goal
	Teams   []team.Team
	Players []player.Player
}

type Writer interface {
	CommitResult(ctx context.Context, commit Commit) error
}
