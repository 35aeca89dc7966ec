package namegen

import (
	"strings"
	"testing"

	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

func TestGenerator_ClubName_StaysWithinTeamNameLimit(t *testing.T) {
	g := New(rng.New(7), 7)

	for i := 0; i < 1000; i++ {
		name := g.ClubName()
		if len(name) > clubNameMaxLen {
			t.Fatalf("club name %q is %d characters, limit %d", name, len(name), clubNameMaxLen)
		}
		if len(name) < 3 {
			t.Fatalf("club name %q too short", name)
		}
	}
}

func TestGenerator_ClubName_CarriesLeagueAbbreviation(t *testing.T) {
	g := New(rng.New(11), 11)

	for i := 0; i < 100; i++ {
		name := g.ClubName()
		found := false
		for _, abbr := range clubAbbreviations {
			if strings.HasPrefix(name, abbr+" ") || strings.HasSuffix(name, " "+abbr) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("club name %q lacks a league abbreviation", name)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := New(rng.New(3), 3)
	b := New(rng.New(3), 3)

	for i := 0; i < 20; i++ {
		if an, bn := a.ClubName(), b.ClubName(); an != bn {
			t.Fatalf("seeded generators diverged: %q vs %q", an, bn)
		}
		if an, bn := a.PlayerName(), b.PlayerName(); an != bn {
			t.Fatalf("seeded player names diverged: %q vs %q", an, bn)
		}
	}
}
