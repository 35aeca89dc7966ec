package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
)

type PackTier string

const (
	PackBronze PackTier = "bronze"
	PackSilver PackTier = "silver"
	PackGold   PackTier = "gold"
)

const playersPerPack = 3

// pack pricing and the skill band each tier rolls around the current
// team average.
type packSpec struct {
	Price       int
	LowerOffset int
	UpperOffset int
}

var packSpecs = map[PackTier]packSpec{
	PackBronze: {Price: 250, LowerOffset: -10, UpperOffset: 0},
	PackSilver: {Price: 500, LowerOffset: -4, UpperOffset: 4},
	PackGold:   {Price: 750, LowerOffset: 0, UpperOffset: 8},
}

type PackService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	factory    *PlayerFactory
	logger     *logging.Logger
}

func NewPackService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	factory *PlayerFactory,
	logger *logging.Logger,
) *PackService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PackService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		factory:    factory,
		logger:     logger,
	}
}

type OpenPackOutput struct {
	Team    team.Team
	Players []player.Player
}

// OpenPack debits the tier price and rolls three new players whose skill
// band is anchored on the buyer's current team skill.
func (s *PackService) OpenPack(ctx context.Context, ownerID, teamID string, tier PackTier) (OpenPackOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PackService.OpenPack")
	defer span.End()

	spec, ok := packSpecs[tier]
	if !ok {
		return OpenPackOutput{}, fmt.Errorf("%w: unknown pack tier %q", ErrInvalidInput, tier)
	}

	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return OpenPackOutput{}, fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return OpenPackOutput{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return OpenPackOutput{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.OwnerID != ownerID {
		return OpenPackOutput{}, fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}

	if item.Coins < spec.Price {
		return OpenPackOutput{}, fmt.Errorf("%w: need %d coins, have %d", ErrInvalidInput, spec.Price, item.Coins)
	}

	roster, err := s.playerRepo.ListTopSkillByTeam(ctx, item.ID, sim.TeamSkillPlayerCount)
	if err != nil {
		return OpenPackOutput{}, fmt.Errorf("list top players: %w", err)
	}
	average := sim.TeamSkill(roster)

	pulls := make([]player.Player, 0, playersPerPack)
	for i := 0; i < playersPerPack; i++ {
		p, err := s.factory.NewPlayer(item.ID, average+spec.LowerOffset, average+spec.UpperOffset, "")
		if err != nil {
			return OpenPackOutput{}, fmt.Errorf("roll pack player: %w", err)
		}
		if err := s.playerRepo.Create(ctx, p); err != nil {
			return OpenPackOutput{}, fmt.Errorf("create pack player: %w", err)
		}
		pulls = append(pulls, p)
	}

	item.Coins -= spec.Price
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return OpenPackOutput{}, fmt.Errorf("debit pack price: %w", err)
	}

	s.logger.InfoContext(ctx, "pack opened", "team_id", item.ID, "tier", string(tier), "players", len(pulls))
	return OpenPackOutput{Team: item, Players: pulls}, nil
}
