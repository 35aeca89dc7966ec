package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/cache"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
	"github.com/futsalverse/futsal-manager/internal/platform/namegen"
	"github.com/futsalverse/futsal-manager/internal/platform/resilience"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

const (
	MinDifficulty = 0
	MaxDifficulty = 10

	// TargetSkill anchors the opponent a notch below the challenger so the
	// lowest difficulty stays winnable, then difficulty buys it back.
	difficultyBaseOffset  = -10
	difficultySkillWeight = 2

	// Spread of individual CPU player skill around the squad target.
	cpuSkillVariance = 0.2

	cpuSquadSize = 5

	// Fabricated career span for a freshly minted CPU side.
	cpuHistoryMinMatches = 0
	cpuHistoryMaxMatches = 200

	// Fabricated record shares. Draws stay flat; wins and losses shift in
	// opposite directions as difficulty moves off parity.
	cpuRecordBaseShare       = 0.33
	cpuWinSharePerDifficulty = 0.06
)

// Opponent bundles everything the match engine needs to know about the
// CPU side of a fixture.
type Opponent struct {
	Team    team.Team
	Players []player.Player
	Lineup  sheet.PlayerSlots
}

type OpponentService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	factory    *PlayerFactory
	names      *namegen.Generator
	rng        *rng.Rand
	cache      *cache.Store
	flight     resilience.SingleFlight
	logger     *logging.Logger
}

func NewOpponentService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	factory *PlayerFactory,
	names *namegen.Generator,
	r *rng.Rand,
	store *cache.Store,
	logger *logging.Logger,
) *OpponentService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &OpponentService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		factory:    factory,
		names:      names,
		rng:        r,
		cache:      store,
		logger:     logger,
	}
}

// TargetSkill maps a challenger's team skill and a difficulty knob onto the
// CPU squad skill, never dropping below the minimum player skill.
func TargetSkill(challengerSkill, difficulty int) (int, error) {
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return 0, fmt.Errorf("%w: difficulty must be between %d and %d", ErrInvalidInput, MinDifficulty, MaxDifficulty)
	}
	target := challengerSkill + difficultyBaseOffset + difficultySkillWeight*difficulty
	if target < player.MinSkill {
		target = player.MinSkill
	}
	return target, nil
}

// ForChallenge returns a CPU opponent at the requested difficulty, reusing
// an existing CPU team of the exact target skill when one exists.
func (s *OpponentService) ForChallenge(ctx context.Context, challengerSkill, difficulty int) (Opponent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OpponentService.ForChallenge")
	defer span.End()

	target, err := TargetSkill(challengerSkill, difficulty)
	if err != nil {
		return Opponent{}, err
	}

	// Concurrent misses at the same target collapse into one lookup-or-mint,
	// so a burst of challenges cannot mint duplicate CPU teams.
	value, err, _ := s.flight.Do(cpuCacheKey(target), func() (any, error) {
		if existing, found, err := s.lookupExisting(ctx, target); err != nil {
			return nil, err
		} else if found {
			return existing, nil
		}

		opponent, err := s.mint(ctx, target, difficulty)
		if err != nil {
			return nil, err
		}
		s.cache.Set(cpuCacheKey(target), opponent.Team.ID)
		return opponent, nil
	})
	if err != nil {
		return Opponent{}, err
	}
	return value.(Opponent), nil
}

func (s *OpponentService) lookupExisting(ctx context.Context, target int) (Opponent, bool, error) {
	// The cache only remembers the team id; players are always reloaded so
	// stamina and career counters stay current.
	if cached, ok := s.cache.Get(cpuCacheKey(target)); ok {
		if teamID, ok := cached.(string); ok {
			item, exists, err := s.teamRepo.GetByID(ctx, teamID)
			if err != nil {
				return Opponent{}, false, fmt.Errorf("get cached cpu team: %w", err)
			}
			if exists && item.IsCPU() && item.CPUSkill == target {
				return s.hydrate(ctx, item)
			}
			s.cache.Delete(cpuCacheKey(target))
		}
	}

	item, exists, err := s.teamRepo.FindCPUBySkill(ctx, target)
	if err != nil {
		return Opponent{}, false, fmt.Errorf("find cpu team by skill: %w", err)
	}
	if !exists {
		return Opponent{}, false, nil
	}
	s.cache.Set(cpuCacheKey(target), item.ID)
	return s.hydrate(ctx, item)
}

func (s *OpponentService) hydrate(ctx context.Context, item team.Team) (Opponent, bool, error) {
	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return Opponent{}, false, fmt.Errorf("list cpu players: %w", err)
	}
	lineup, err := cpuLineup(players)
	if err != nil {
		return Opponent{}, false, fmt.Errorf("cpu team %s: %w", item.ID, err)
	}
	return Opponent{Team: item, Players: players, Lineup: lineup}, true, nil
}

// mint creates a brand-new CPU team of the target skill, five players with
// a little spread around the target, and a fabricated track record.
func (s *OpponentService) mint(ctx context.Context, target, difficulty int) (Opponent, error) {
	teamID, err := s.factory.idGen.NewID()
	if err != nil {
		return Opponent{}, fmt.Errorf("generate cpu team id: %w", err)
	}

	matchesPlayed := s.rng.Between(cpuHistoryMinMatches, cpuHistoryMaxMatches)
	wins, draws, losses := fabricatedRecord(matchesPlayed, difficulty)

	item := team.Team{
		ID:       teamID,
		Name:     s.names.ClubName(),
		Wins:     wins,
		Draws:    draws,
		Losses:   losses,
		CPUSkill: target,
	}
	if err := item.Validate(); err != nil {
		return Opponent{}, fmt.Errorf("generated cpu team invalid: %w", err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return Opponent{}, fmt.Errorf("create cpu team: %w", err)
	}

	lower := int(math.Round(float64(target) * (1 - cpuSkillVariance)))
	upper := int(math.Round(float64(target) * (1 + cpuSkillVariance)))

	players := make([]player.Player, 0, cpuSquadSize)
	for _, slot := range sheet.AllSlots {
		p, err := s.factory.NewPlayer(item.ID, lower, upper, slot.Category())
		if err != nil {
			return Opponent{}, fmt.Errorf("generate cpu player: %w", err)
		}
		p = s.factory.WithSyntheticHistory(p, item.MatchesPlayed())
		if err := s.playerRepo.Create(ctx, p); err != nil {
			return Opponent{}, fmt.Errorf("create cpu player: %w", err)
		}
		players = append(players, p)
	}

	lineup, err := cpuLineup(players)
	if err != nil {
		return Opponent{}, err
	}

	s.logger.InfoContext(ctx, "cpu opponent minted",
		"team_id", item.ID, "skill", target, "difficulty", difficulty)
	return Opponent{Team: item, Players: players, Lineup: lineup}, nil
}

// fabricatedRecord invents a career for a fresh CPU side. Difficulty 5 is
// parity, splitting wins/draws/losses a third each; every notch off parity
// moves 6% of the matches between the win and loss columns.
func fabricatedRecord(matchesPlayed, difficulty int) (wins, draws, losses int) {
	parityOffset := float64(difficulty) - float64(MaxDifficulty)/2

	wins = int(math.Round(float64(matchesPlayed) * (cpuRecordBaseShare + cpuWinSharePerDifficulty*parityOffset)))
	if wins < 0 {
		wins = 0
	}
	draws = int(math.Round(float64(matchesPlayed) * cpuRecordBaseShare))
	losses = int(math.Round(float64(matchesPlayed) * (cpuRecordBaseShare - cpuWinSharePerDifficulty*parityOffset)))
	if losses < 0 {
		losses = 0
	}
	return wins, draws, losses
}

// cpuLineup fills each slot with a squad player of the matching position,
// falling back to whoever is left when positions do not line up.
func cpuLineup(players []player.Player) (sheet.PlayerSlots, error) {
	if len(players) < cpuSquadSize {
		return sheet.PlayerSlots{}, fmt.Errorf("cpu squad has %d players, want %d", len(players), cpuSquadSize)
	}

	used := make(map[string]bool, cpuSquadSize)
	var slots sheet.PlayerSlots
	for _, slot := range sheet.AllSlots {
		assigned := false
		for _, p := range players {
			if used[p.ID] || p.PreferredPosition != slot.Category() {
				continue
			}
			slots.Set(slot, p.ID)
			used[p.ID] = true
			assigned = true
			break
		}
		if assigned {
			continue
		}
		for _, p := range players {
			if used[p.ID] {
				continue
			}
			slots.Set(slot, p.ID)
			used[p.ID] = true
			break
		}
	}
	if err := slots.Validate(); err != nil {
		return sheet.PlayerSlots{}, err
	}
	return slots, nil
}

func cpuCacheKey(skill int) string {
	return "cpu-team:" + strconv.Itoa(skill)
}
