package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	results map[string]match.Result
	goals   map[string][]match.Goal
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		results: make(map[string]match.Result),
		goals:   make(map[string][]match.Goal),
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Result, []match.Goal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[matchID]
	if !ok {
		return match.Result{}, nil, false, nil
	}
	return result, append([]match.Goal(nil), r.goals[matchID]...), true, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0)
	if teamID == "" {
		return out, nil
	}
	for _, item := range r.results {
		if item.PlayerTeamID == teamID || item.CPUTeamID == teamID {
			out = append(out, item)
		}
	}
	sortResultsNewestFirst(out)
	return out, nil
}

func (r *MatchRepository) ListAll(_ context.Context) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0, len(r.results))
	for _, item := range r.results {
		out = append(out, item)
	}
	sortResultsNewestFirst(out)
	return out, nil
}

func (r *MatchRepository) store(result match.Result, goals []match.Goal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[result.ID] = result
	r.goals[result.ID] = append([]match.Goal(nil), goals...)
}

func sortResultsNewestFirst(items []match.Result) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PlayedAt.Equal(items[j].PlayedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].PlayedAt.After(items[j].PlayedAt)
	})
}
