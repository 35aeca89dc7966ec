package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/id"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
)

const (
	startingCoins             = 1000
	createdTeamPlayerAmount   = 7
	createdTeamSkillLower     = 15
	createdTeamSkillUpper     = 25
	squadFloor                = 5
	basePriceForAveragePlayer = 50
	minSellPrice              = 5
)

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	factory    *PlayerFactory
	idGen      id.Generator
	logger     *logging.Logger
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	factory *PlayerFactory,
	idGen id.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		factory:    factory,
		idGen:      idGen,
		logger:     logger,
	}
}

// Create registers a new owned team with the starting coin balance and a
// generated starter squad.
func (s *TeamService) Create(ctx context.Context, ownerID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	name = strings.TrimSpace(name)
	if ownerID == "" {
		return team.Team{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:      teamID,
		OwnerID: ownerID,
		Name:    name,
		Coins:   startingCoins,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	for i := 0; i < createdTeamPlayerAmount; i++ {
		p, err := s.factory.NewPlayer(item.ID, createdTeamSkillLower, createdTeamSkillUpper, "")
		if err != nil {
			return team.Team{}, fmt.Errorf("generate starter player: %w", err)
		}
		if err := s.playerRepo.Create(ctx, p); err != nil {
			return team.Team{}, fmt.Errorf("create starter player: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// Get returns an owned team, or a CPU team for read access.
func (s *TeamService) Get(ctx context.Context, ownerID, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.retrieveOwned(ctx, ownerID, teamID)
}

func (s *TeamService) ListByOwner(ctx context.Context, ownerID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByOwner")
	defer span.End()

	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}
	return items, nil
}

func (s *TeamService) Rename(ctx context.Context, ownerID, teamID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rename")
	defer span.End()

	item, err := s.retrieveOwned(ctx, ownerID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	item.Name = strings.TrimSpace(name)
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("rename team: %w", err)
	}
	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, ownerID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	item, err := s.retrieveOwned(ctx, ownerID, teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// TeamSkill rates the team by its strongest first-team players.
func (s *TeamService) TeamSkill(ctx context.Context, teamID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.TeamSkill")
	defer span.End()

	players, err := s.playerRepo.ListTopSkillByTeam(ctx, teamID, sim.TeamSkillPlayerCount)
	if err != nil {
		return 0, fmt.Errorf("list top players: %w", err)
	}
	return sim.TeamSkill(players), nil
}

// ListPlayers returns the full roster of an owned team.
func (s *TeamService) ListPlayers(ctx context.Context, ownerID, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	item, err := s.retrieveOwned(ctx, ownerID, teamID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return players, nil
}

type SellPlayersOutput struct {
	Team       team.Team
	TotalPrice int
}

// SellPlayers detaches the given players into the unassigned pool and credits
// the team with their combined sell price. Selling below the squad floor is
// rejected before any mutation happens.
func (s *TeamService) SellPlayers(ctx context.Context, ownerID, teamID string, playerIDs []string) (SellPlayersOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SellPlayers")
	defer span.End()

	if len(playerIDs) == 0 {
		return SellPlayersOutput{}, fmt.Errorf("%w: no players selected", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		if strings.TrimSpace(playerID) == "" {
			return SellPlayersOutput{}, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[playerID]; ok {
			return SellPlayersOutput{}, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
	}

	item, err := s.retrieveOwned(ctx, ownerID, teamID)
	if err != nil {
		return SellPlayersOutput{}, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return SellPlayersOutput{}, fmt.Errorf("list roster: %w", err)
	}
	if len(roster)-len(playerIDs) < squadFloor {
		return SellPlayersOutput{}, fmt.Errorf("%w: cannot drop below %d players", ErrInvalidInput, squadFloor)
	}

	rosterByID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		rosterByID[p.ID] = p
	}

	teamAverage := sim.TeamSkill(roster)
	totalPrice := 0
	for _, playerID := range playerIDs {
		p, ok := rosterByID[playerID]
		if !ok {
			return SellPlayersOutput{}, fmt.Errorf("%w: player %s is not on this team", ErrNotFound, playerID)
		}
		totalPrice += sellPrice(p, teamAverage)
	}

	if err := s.playerRepo.DetachFromTeam(ctx, playerIDs); err != nil {
		return SellPlayersOutput{}, fmt.Errorf("detach sold players: %w", err)
	}

	item.Coins += totalPrice
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return SellPlayersOutput{}, fmt.Errorf("credit sell price: %w", err)
	}

	s.logger.InfoContext(ctx, "players sold", "team_id", item.ID, "count", len(playerIDs), "price", totalPrice)
	return SellPlayersOutput{Team: item, TotalPrice: totalPrice}, nil
}

// sellPrice values a player relative to the squad: above-average players
// fetch more, but nobody sells below the minimum.
func sellPrice(p player.Player, teamAverage int) int {
	price := basePriceForAveragePlayer - teamAverage + p.Skill
	if price < minSellPrice {
		return minSellPrice
	}
	return price
}

func (s *TeamService) retrieveOwned(ctx context.Context, ownerID, teamID string) (team.Team, error) {
	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return team.Team{}, fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.OwnerID != ownerID {
		return team.Team{}, fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}
	return item, nil
}
