package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/futsalverse/futsal-manager/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{teams: make(map[string]team.Team)}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListByOwner(_ context.Context, ownerID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	if ownerID == "" {
		return out, nil
	}
	for _, item := range r.teams {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item)
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) FindCPUBySkill(_ context.Context, skill int) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := make([]team.Team, 0)
	for _, item := range r.teams {
		if item.IsCPU() && item.CPUSkill == skill {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return team.Team{}, false, nil
	}
	sortTeams(candidates)
	return candidates[0], true, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)
	return nil
}

// applyAll overwrites a batch of teams in one critical section.
func (r *TeamRepository) applyAll(items []team.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.teams[item.ID] = item
	}
}

func sortTeams(items []team.Team) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
