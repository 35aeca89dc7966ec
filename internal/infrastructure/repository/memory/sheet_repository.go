package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

type SheetRepository struct {
	mu     sync.RWMutex
	sheets map[string]sheet.Sheet
}

func NewSheetRepository() *SheetRepository {
	return &SheetRepository{sheets: make(map[string]sheet.Sheet)}
}

func (r *SheetRepository) GetByID(_ context.Context, sheetID string) (sheet.Sheet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.sheets[sheetID]
	return item, ok, nil
}

func (r *SheetRepository) ListByTeam(_ context.Context, teamID string) ([]sheet.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sheet.Sheet, 0)
	if teamID == "" {
		return out, nil
	}
	for _, item := range r.sheets {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SheetRepository) Create(_ context.Context, item sheet.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheets[item.ID] = item
	return nil
}

func (r *SheetRepository) Update(_ context.Context, item sheet.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheets[item.ID] = item
	return nil
}

func (r *SheetRepository) Delete(_ context.Context, sheetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sheets, sheetID)
	return nil
}
