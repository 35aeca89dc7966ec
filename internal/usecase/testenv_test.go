package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/infrastructure/repository/memory"
	"github.com/futsalverse/futsal-manager/internal/platform/cache"
	"github.com/futsalverse/futsal-manager/internal/platform/namegen"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

// sequenceIDGenerator hands out deterministic IDs so tests can predict and
// cross-reference created entities.
type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%04d", g.prefix, g.next), nil
}

type testEnv struct {
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	sheets  *memory.SheetRepository
	matches *memory.MatchRepository
	random  *rng.Rand
	names   *namegen.Generator
	idGen   *sequenceIDGenerator
	factory *PlayerFactory
}

func newTestEnv(seed uint64) *testEnv {
	random := rng.New(seed)
	idGen := &sequenceIDGenerator{prefix: "id"}
	names := namegen.New(random, seed)

	return &testEnv{
		teams:   memory.NewTeamRepository(),
		players: memory.NewPlayerRepository(),
		sheets:  memory.NewSheetRepository(),
		matches: memory.NewMatchRepository(),
		random:  random,
		names:   names,
		idGen:   idGen,
		factory: NewPlayerFactory(names, idGen, random),
	}
}

func (e *testEnv) opponentService() *OpponentService {
	return NewOpponentService(e.teams, e.players, e.factory, e.names, e.random, cache.NewStore(time.Minute), nil)
}

func (e *testEnv) matchService(t *testing.T, staminaEffect bool) *MatchService {
	t.Helper()

	positions, err := sim.NewDefaultPositionGenerator(e.random)
	if err != nil {
		t.Fatalf("build position generator: %v", err)
	}

	return NewMatchService(
		e.teams,
		e.players,
		e.sheets,
		e.matches,
		memory.NewMatchWriter(e.matches, e.teams, e.players),
		e.opponentService(),
		positions,
		sim.NewSkillCalculator(staminaEffect),
		e.random,
		e.idGen,
		nil,
		nil,
		nil,
	)
}

// seedSquad stores an owned team with five players of uniform skill, one per
// slot, and a match-ready sheet over them.
func (e *testEnv) seedSquad(t *testing.T, ownerID, teamID string, skill int) sheet.Sheet {
	t.Helper()
	ctx := t.Context()

	item := team.Team{ID: teamID, OwnerID: ownerID, Name: "Test United", Coins: 1000}
	if err := e.teams.Create(ctx, item); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	var slots sheet.PlayerSlots
	for i, slot := range sheet.AllSlots {
		p := player.Player{
			ID:                fmt.Sprintf("%s-p%d", teamID, i+1),
			TeamID:            teamID,
			Name:              fmt.Sprintf("Player %d", i+1),
			PreferredPosition: slot.Category(),
			Skill:             skill,
			StaminaLeft:       player.MaxStamina,
		}
		if err := e.players.Create(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
		slots.Set(slot, p.ID)
	}

	item2 := sheet.Sheet{
		ID:        teamID + "-sheet",
		TeamID:    teamID,
		Name:      "First Team",
		Slots:     slots,
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := e.sheets.Create(ctx, item2); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}
	return item2
}
