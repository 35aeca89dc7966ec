package usecase

import (
	"testing"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/infrastructure/repository/memory"
)

func TestStatsService_RebuildRecords_FixesDriftedHumanTeams(t *testing.T) {
	env := newTestEnv(61)
	ctx := t.Context()

	drifted := team.Team{ID: "team-1", OwnerID: "owner-1", Name: "Drifted FC", Wins: 5, Draws: 5, Losses: 5}
	cpu := team.Team{ID: "cpu-1", Name: "Robot SC", Wins: 10, CPUSkill: 40}
	clean := team.Team{ID: "team-2", OwnerID: "owner-2", Name: "Clean FC"}
	for _, item := range []team.Team{drifted, cpu, clean} {
		if err := env.teams.Create(ctx, item); err != nil {
			t.Fatalf("seed team %s: %v", item.ID, err)
		}
	}

	writer := memory.NewMatchWriter(env.matches, env.teams, env.players)
	results := []match.Result{
		{ID: "m-1", PlayerTeamID: "team-1", CPUTeamID: "cpu-1", PlayerScore: 2, CPUScore: 1, PlayedAt: time.Now()},
		{ID: "m-2", PlayerTeamID: "team-1", CPUTeamID: "cpu-1", PlayerScore: 1, CPUScore: 1, PlayedAt: time.Now()},
	}
	for _, r := range results {
		if err := writer.CommitResult(ctx, match.Commit{Result: r}); err != nil {
			t.Fatalf("seed match %s: %v", r.ID, err)
		}
	}

	svc := NewStatsService(env.teams, env.matches, nil)
	out, err := svc.RebuildRecords(ctx)
	if err != nil {
		t.Fatalf("rebuild records failed: %v", err)
	}
	if out.TeamsScanned != 3 {
		t.Fatalf("scanned %d teams, want 3", out.TeamsScanned)
	}
	if out.TeamsFixed != 1 {
		t.Fatalf("fixed %d teams, want 1", out.TeamsFixed)
	}

	fixed, _, err := env.teams.GetByID(ctx, "team-1")
	if err != nil {
		t.Fatalf("reload fixed team: %v", err)
	}
	if fixed.Wins != 1 || fixed.Draws != 1 || fixed.Losses != 0 {
		t.Fatalf("rebuilt record %d/%d/%d, want 1/1/0", fixed.Wins, fixed.Draws, fixed.Losses)
	}

	// CPU records mix fabricated history with played matches; the rebuild
	// must leave them alone.
	untouched, _, err := env.teams.GetByID(ctx, "cpu-1")
	if err != nil {
		t.Fatalf("reload cpu team: %v", err)
	}
	if untouched.Wins != 10 || untouched.Draws != 0 || untouched.Losses != 0 {
		t.Fatalf("cpu record mutated to %d/%d/%d", untouched.Wins, untouched.Draws, untouched.Losses)
	}
}

func TestStatsService_RebuildRecords_NoMatchesNoFixes(t *testing.T) {
	env := newTestEnv(62)
	ctx := t.Context()

	if err := env.teams.Create(ctx, team.Team{ID: "team-1", OwnerID: "owner-1", Name: "Idle FC"}); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	svc := NewStatsService(env.teams, env.matches, nil)
	out, err := svc.RebuildRecords(ctx)
	if err != nil {
		t.Fatalf("rebuild records failed: %v", err)
	}
	if out.TeamsScanned != 1 || out.TeamsFixed != 0 {
		t.Fatalf("got scanned=%d fixed=%d, want 1 and 0", out.TeamsScanned, out.TeamsFixed)
	}
}
