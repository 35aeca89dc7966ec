package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: make(map[string]player.Player)}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if item, ok := r.players[playerID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	if teamID == "" {
		return out, nil
	}
	for _, item := range r.players {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) ListTopSkillByTeam(ctx context.Context, teamID string, limit int) ([]player.Player, error) {
	out, err := r.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Skill > out[j].Skill })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) DetachFromTeam(_ context.Context, playerIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, playerID := range playerIDs {
		if item, ok := r.players[playerID]; ok {
			item.TeamID = ""
			r.players[playerID] = item
		}
	}
	return nil
}

// applyAll overwrites a batch of players in one critical section.
func (r *PlayerRepository) applyAll(items []player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.players[item.ID] = item
	}
}

func sortPlayers(items []player.Player) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
