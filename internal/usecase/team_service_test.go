package usecase

import (
	"errors"
	"testing"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
)

func (e *testEnv) teamService() *TeamService {
	return NewTeamService(e.teams, e.players, e.factory, e.idGen, nil)
}

func TestTeamService_Create_SeedsStarterSquad(t *testing.T) {
	env := newTestEnv(31)
	svc := env.teamService()

	item, err := svc.Create(t.Context(), "owner-1", "Brand New FC")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if item.Coins != startingCoins {
		t.Fatalf("starting coins %d, want %d", item.Coins, startingCoins)
	}
	if item.MatchesPlayed() != 0 {
		t.Fatalf("fresh team already has a record")
	}

	roster, err := env.players.ListByTeam(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != createdTeamPlayerAmount {
		t.Fatalf("starter squad has %d players, want %d", len(roster), createdTeamPlayerAmount)
	}
	for _, p := range roster {
		if p.Skill < createdTeamSkillLower || p.Skill > createdTeamSkillUpper {
			t.Fatalf("starter skill %d outside [%d, %d]", p.Skill, createdTeamSkillLower, createdTeamSkillUpper)
		}
		if p.StaminaLeft != player.MaxStamina {
			t.Fatalf("starter %s not fully rested", p.ID)
		}
	}
}

func TestTeamService_Create_RejectsBadName(t *testing.T) {
	env := newTestEnv(31)
	svc := env.teamService()

	if _, err := svc.Create(t.Context(), "owner-1", "ab"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short name, got %v", err)
	}
}

func TestTeamService_Get_EnforcesOwnership(t *testing.T) {
	env := newTestEnv(31)
	svc := env.teamService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	if _, err := svc.Get(t.Context(), "owner-2", "team-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Get(t.Context(), "owner-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_SellPlayers_RejectsBelowSquadFloor(t *testing.T) {
	env := newTestEnv(32)
	svc := env.teamService()
	selected := env.seedSquad(t, "owner-1", "team-1", 50)

	sold := selected.Slots.PlayerIDs()[:1]
	if _, err := svc.SellPlayers(t.Context(), "owner-1", "team-1", sold); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput at squad floor, got %v", err)
	}

	// The rejection must leave everything untouched.
	roster, err := env.players.ListByTeam(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 5 {
		t.Fatalf("roster mutated on rejected sale: %d players", len(roster))
	}
	item, _, err := env.teams.GetByID(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("reload team: %v", err)
	}
	if item.Coins != 1000 {
		t.Fatalf("coins mutated on rejected sale: %d", item.Coins)
	}
}

func TestTeamService_SellPlayers_CreditsSellPrice(t *testing.T) {
	env := newTestEnv(33)
	svc := env.teamService()

	created, err := svc.Create(t.Context(), "owner-1", "Selling Club")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	roster, err := env.players.ListByTeam(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}

	average := sim.TeamSkill(roster)
	sold := []string{roster[0].ID, roster[1].ID}
	wantPrice := sellPrice(roster[0], average) + sellPrice(roster[1], average)

	out, err := svc.SellPlayers(t.Context(), "owner-1", created.ID, sold)
	if err != nil {
		t.Fatalf("sell players failed: %v", err)
	}
	if out.TotalPrice != wantPrice {
		t.Fatalf("total price %d, want %d", out.TotalPrice, wantPrice)
	}
	if out.Team.Coins != startingCoins+wantPrice {
		t.Fatalf("coins %d, want %d", out.Team.Coins, startingCoins+wantPrice)
	}

	remaining, err := env.players.ListByTeam(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list remaining roster: %v", err)
	}
	if len(remaining) != createdTeamPlayerAmount-2 {
		t.Fatalf("roster has %d players after sale, want %d", len(remaining), createdTeamPlayerAmount-2)
	}
	for _, p := range remaining {
		if p.ID == sold[0] || p.ID == sold[1] {
			t.Fatalf("sold player %s still on roster", p.ID)
		}
	}
}

func TestTeamService_SellPlayers_RejectsDuplicatesAndStrangers(t *testing.T) {
	env := newTestEnv(34)
	svc := env.teamService()

	created, err := svc.Create(t.Context(), "owner-1", "Strict Club")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	roster, err := env.players.ListByTeam(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}

	dup := []string{roster[0].ID, roster[0].ID}
	if _, err := svc.SellPlayers(t.Context(), "owner-1", created.ID, dup); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicates, got %v", err)
	}

	if _, err := svc.SellPlayers(t.Context(), "owner-1", created.ID, []string{"stranger"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign player, got %v", err)
	}
}

func TestSellPrice_NeverBelowMinimum(t *testing.T) {
	weak := player.Player{Skill: 1}
	if got := sellPrice(weak, 90); got != minSellPrice {
		t.Fatalf("sell price %d, want floor %d", got, minSellPrice)
	}

	strong := player.Player{Skill: 70}
	if got := sellPrice(strong, 50); got != basePriceForAveragePlayer-50+70 {
		t.Fatalf("sell price %d, want %d", got, basePriceForAveragePlayer-50+70)
	}
}

func TestTeamService_Rename(t *testing.T) {
	env := newTestEnv(35)
	svc := env.teamService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	renamed, err := svc.Rename(t.Context(), "owner-1", "team-1", "  Renamed United  ")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "Renamed United" {
		t.Fatalf("name %q not trimmed", renamed.Name)
	}

	if _, err := svc.Rename(t.Context(), "owner-1", "team-1", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short name, got %v", err)
	}
}

func TestTeamService_TeamSkill_AveragesTopPlayers(t *testing.T) {
	env := newTestEnv(36)
	svc := env.teamService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	skill, err := svc.TeamSkill(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("team skill failed: %v", err)
	}
	if skill != 50 {
		t.Fatalf("uniform squad of 50 rates %d", skill)
	}
}
