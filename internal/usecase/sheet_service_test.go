package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

func (e *testEnv) sheetService(now func() time.Time) *SheetService {
	return NewSheetService(e.sheets, e.teams, e.players, e.idGen, now)
}

func TestSheetService_CreateAndUpdate(t *testing.T) {
	env := newTestEnv(51)
	seeded := env.seedSquad(t, "owner-1", "team-1", 50)

	firstNow := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc := env.sheetService(func() time.Time { return firstNow })

	created, err := svc.Create(t.Context(), "owner-1", "team-1", "  Cup Night  ", seeded.Slots)
	if err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}
	if created.Name != "Cup Night" {
		t.Fatalf("name %q not trimmed", created.Name)
	}
	if !created.UpdatedAt.Equal(firstNow) {
		t.Fatalf("updated at %v, want %v", created.UpdatedAt, firstNow)
	}
	if !created.Slots.Filled() {
		t.Fatalf("created sheet lost its slots")
	}

	secondNow := firstNow.Add(time.Hour)
	svc.now = func() time.Time { return secondNow }

	partial := sheet.PlayerSlots{Goalkeeper: seeded.Slots.Goalkeeper}
	updated, err := svc.Update(t.Context(), "owner-1", created.ID, "Rotation", partial)
	if err != nil {
		t.Fatalf("update sheet failed: %v", err)
	}
	if updated.Slots.Filled() {
		t.Fatalf("partial sheet reports match ready")
	}
	if !updated.UpdatedAt.Equal(secondNow) {
		t.Fatalf("updated at %v, want %v", updated.UpdatedAt, secondNow)
	}
}

func TestSheetService_Create_RejectsForeignAndDuplicatePlayers(t *testing.T) {
	env := newTestEnv(52)
	env.seedSquad(t, "owner-1", "team-1", 50)
	other := env.seedSquad(t, "owner-2", "team-2", 50)

	svc := env.sheetService(nil)

	// A player from another club cannot be fielded.
	var slots sheet.PlayerSlots
	slots.Set(sheet.SlotGoalkeeper, other.Slots.Goalkeeper)
	if _, err := svc.Create(t.Context(), "owner-1", "team-1", "Poached", slots); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign player, got %v", err)
	}

	// Nor can the same player hold two slots.
	roster, err := env.players.ListByTeam(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	var doubled sheet.PlayerSlots
	doubled.Set(sheet.SlotRightAttacker, roster[0].ID)
	doubled.Set(sheet.SlotLeftAttacker, roster[0].ID)
	if _, err := svc.Create(t.Context(), "owner-1", "team-1", "Cloned", doubled); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate assignment, got %v", err)
	}

	// An unknown player id is a lookup miss, not a validation failure.
	var ghost sheet.PlayerSlots
	ghost.Set(sheet.SlotGoalkeeper, "ghost")
	if _, err := svc.Create(t.Context(), "owner-1", "team-1", "Haunted", ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestSheetService_OwnershipChecks(t *testing.T) {
	env := newTestEnv(53)
	seeded := env.seedSquad(t, "owner-1", "team-1", 50)
	svc := env.sheetService(nil)

	if _, err := svc.Get(t.Context(), "owner-2", seeded.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on get, got %v", err)
	}
	if err := svc.Delete(t.Context(), "owner-2", seeded.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on delete, got %v", err)
	}
	if _, err := svc.Get(t.Context(), "owner-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(t.Context(), "owner-1", seeded.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	items, err := svc.ListByTeam(t.Context(), "owner-1", "team-1")
	if err != nil {
		t.Fatalf("list sheets failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty sheet list, got %d", len(items))
	}
}

// Keep the test honest about roster membership: detached players invalidate
// sheets that still reference them.
func TestSheetService_Update_RejectsDetachedPlayer(t *testing.T) {
	env := newTestEnv(54)
	seeded := env.seedSquad(t, "owner-1", "team-1", 50)
	svc := env.sheetService(nil)

	detached := seeded.Slots.Goalkeeper
	if err := env.players.DetachFromTeam(t.Context(), []string{detached}); err != nil {
		t.Fatalf("detach player: %v", err)
	}

	if _, err := svc.Update(t.Context(), "owner-1", seeded.ID, seeded.Name, seeded.Slots); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for detached player, got %v", err)
	}
}
