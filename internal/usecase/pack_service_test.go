package usecase

import (
	"errors"
	"testing"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
)

func (e *testEnv) packService() *PackService {
	return NewPackService(e.teams, e.players, e.factory, nil)
}

func TestPackService_OpenPack_DebitsAndRollsAroundTeamAverage(t *testing.T) {
	env := newTestEnv(41)
	svc := env.packService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	out, err := svc.OpenPack(t.Context(), "owner-1", "team-1", PackGold)
	if err != nil {
		t.Fatalf("open gold pack failed: %v", err)
	}

	spec := packSpecs[PackGold]
	if out.Team.Coins != 1000-spec.Price {
		t.Fatalf("coins %d, want %d", out.Team.Coins, 1000-spec.Price)
	}
	if len(out.Players) != playersPerPack {
		t.Fatalf("pack yielded %d players, want %d", len(out.Players), playersPerPack)
	}
	for _, p := range out.Players {
		if p.Skill < 50+spec.LowerOffset || p.Skill > 50+spec.UpperOffset {
			t.Fatalf("gold pull skill %d outside [%d, %d]", p.Skill, 50+spec.LowerOffset, 50+spec.UpperOffset)
		}
		if p.TeamID != "team-1" {
			t.Fatalf("pulled player joined team %q", p.TeamID)
		}
	}

	roster, err := env.players.ListByTeam(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 5+playersPerPack {
		t.Fatalf("roster has %d players after pull, want %d", len(roster), 5+playersPerPack)
	}
}

func TestPackService_OpenPack_BronzeFloorsAtMinSkill(t *testing.T) {
	// A weak squad minus the bronze offset would dip below the minimum skill;
	// the roll must clamp instead.
	env := newTestEnv(42)
	svc := env.packService()
	env.seedSquad(t, "owner-1", "team-1", 5)

	out, err := svc.OpenPack(t.Context(), "owner-1", "team-1", PackBronze)
	if err != nil {
		t.Fatalf("open bronze pack failed: %v", err)
	}
	for _, p := range out.Players {
		if p.Skill < player.MinSkill {
			t.Fatalf("bronze pull skill %d below minimum", p.Skill)
		}
	}
}

func TestPackService_OpenPack_InsufficientCoins(t *testing.T) {
	env := newTestEnv(43)
	svc := env.packService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	item, _, err := env.teams.GetByID(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("reload team: %v", err)
	}
	item.Coins = 100
	if err := env.teams.Update(t.Context(), item); err != nil {
		t.Fatalf("drain coins: %v", err)
	}

	if _, err := svc.OpenPack(t.Context(), "owner-1", "team-1", PackBronze); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty wallet, got %v", err)
	}

	// A failed purchase must not touch the roster.
	roster, err := env.players.ListByTeam(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 5 {
		t.Fatalf("roster mutated on rejected pull: %d players", len(roster))
	}
}

func TestPackService_OpenPack_UnknownTierAndOwnership(t *testing.T) {
	env := newTestEnv(44)
	svc := env.packService()
	env.seedSquad(t, "owner-1", "team-1", 50)

	if _, err := svc.OpenPack(t.Context(), "owner-1", "team-1", PackTier("platinum")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown tier, got %v", err)
	}
	if _, err := svc.OpenPack(t.Context(), "owner-2", "team-1", PackBronze); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
