package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/id"
)

type SheetService struct {
	sheetRepo  sheet.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewSheetService(
	sheetRepo sheet.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	now func() time.Time,
) *SheetService {
	if now == nil {
		now = time.Now
	}
	return &SheetService{
		sheetRepo:  sheetRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        now,
	}
}

func (s *SheetService) Create(ctx context.Context, ownerID, teamID, name string, slots sheet.PlayerSlots) (sheet.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Create")
	defer span.End()

	if err := s.authorizeTeam(ctx, ownerID, teamID); err != nil {
		return sheet.Sheet{}, err
	}

	sheetID, err := s.idGen.NewID()
	if err != nil {
		return sheet.Sheet{}, fmt.Errorf("generate sheet id: %w", err)
	}

	item := sheet.Sheet{
		ID:        sheetID,
		TeamID:    teamID,
		Name:      strings.TrimSpace(name),
		Slots:     slots,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.validateSheet(ctx, item); err != nil {
		return sheet.Sheet{}, err
	}

	if err := s.sheetRepo.Create(ctx, item); err != nil {
		return sheet.Sheet{}, fmt.Errorf("create sheet: %w", err)
	}
	return item, nil
}

func (s *SheetService) Get(ctx context.Context, ownerID, sheetID string) (sheet.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Get")
	defer span.End()

	return s.retrieveOwned(ctx, ownerID, sheetID)
}

func (s *SheetService) ListByTeam(ctx context.Context, ownerID, teamID string) ([]sheet.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.ListByTeam")
	defer span.End()

	if err := s.authorizeTeam(ctx, ownerID, teamID); err != nil {
		return nil, err
	}

	items, err := s.sheetRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list sheets by team: %w", err)
	}
	return items, nil
}

func (s *SheetService) Update(ctx context.Context, ownerID, sheetID, name string, slots sheet.PlayerSlots) (sheet.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Update")
	defer span.End()

	item, err := s.retrieveOwned(ctx, ownerID, sheetID)
	if err != nil {
		return sheet.Sheet{}, err
	}

	item.Name = strings.TrimSpace(name)
	item.Slots = slots
	item.UpdatedAt = s.now().UTC()
	if err := s.validateSheet(ctx, item); err != nil {
		return sheet.Sheet{}, err
	}

	if err := s.sheetRepo.Update(ctx, item); err != nil {
		return sheet.Sheet{}, fmt.Errorf("update sheet: %w", err)
	}
	return item, nil
}

func (s *SheetService) Delete(ctx context.Context, ownerID, sheetID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SheetService.Delete")
	defer span.End()

	item, err := s.retrieveOwned(ctx, ownerID, sheetID)
	if err != nil {
		return err
	}
	if err := s.sheetRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete sheet: %w", err)
	}
	return nil
}

// validateSheet checks the structural rules and that every assigned player
// actually belongs to the sheet's team.
func (s *SheetService) validateSheet(ctx context.Context, item sheet.Sheet) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	playerIDs := item.Slots.PlayerIDs()
	if len(playerIDs) == 0 {
		return nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get sheet players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, playerID := range playerIDs {
		p, ok := byID[playerID]
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		if p.TeamID != item.TeamID {
			return fmt.Errorf("%w: player %s is not on team %s", ErrInvalidInput, playerID, item.TeamID)
		}
	}
	return nil
}

func (s *SheetService) retrieveOwned(ctx context.Context, ownerID, sheetID string) (sheet.Sheet, error) {
	ownerID = strings.TrimSpace(ownerID)
	sheetID = strings.TrimSpace(sheetID)
	if ownerID == "" || sheetID == "" {
		return sheet.Sheet{}, fmt.Errorf("%w: owner id and sheet id are required", ErrInvalidInput)
	}

	item, exists, err := s.sheetRepo.GetByID(ctx, sheetID)
	if err != nil {
		return sheet.Sheet{}, fmt.Errorf("get sheet by id: %w", err)
	}
	if !exists {
		return sheet.Sheet{}, fmt.Errorf("%w: sheet=%s", ErrNotFound, sheetID)
	}
	if err := s.authorizeTeam(ctx, ownerID, item.TeamID); err != nil {
		return sheet.Sheet{}, err
	}
	return item, nil
}

func (s *SheetService) authorizeTeam(ctx context.Context, ownerID, teamID string) error {
	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.OwnerID != ownerID {
		return fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}
	return nil
}
