package memory

import (
	"context"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
)

// MatchWriter lands a whole simulation commit across the in-memory stores.
// Memory writes cannot fail halfway, so applying each piece in turn is
// enough to keep the stores consistent.
type MatchWriter struct {
	matches *MatchRepository
	teams   *TeamRepository
	players *PlayerRepository
}

func NewMatchWriter(matches *MatchRepository, teams *TeamRepository, players *PlayerRepository) *MatchWriter {
	return &MatchWriter{matches: matches, teams: teams, players: players}
}

func (w *MatchWriter) CommitResult(_ context.Context, commit match.Commit) error {
	w.matches.store(commit.Result, commit.Goals)
	w.teams.applyAll(commit.Teams)
	w.players.applyAll(commit.Players)
	return nil
}
