package usecase

import (
	"fmt"
	"math"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/platform/id"
	"github.com/futsalverse/futsal-manager/internal/platform/namegen"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

// Position odds when a player is generated without a requested position
// (team creation, packs). Must sum to 100.
const (
	generateGoalkeeperPercent = 20
	generateDefenderPercent   = 40
	generateAttackerPercent   = 40
)

// Career-contribution multiplier ranges per position, applied against a
// synthetic matches-played count when fabricating CPU player history.
const (
	attackerContributionLower = 0.5
	attackerContributionUpper = 4.0
	defenderContributionLower = 0.25
	defenderContributionUpper = 2.0
	keeperContributionLower   = 0.0
	keeperContributionUpper   = 0.1
)

// PlayerFactory rolls new players inside a skill band. It backs team
// creation, pack openings, and CPU lineup generation.
type PlayerFactory struct {
	names *namegen.Generator
	idGen id.Generator
	rng   *rng.Rand
}

func NewPlayerFactory(names *namegen.Generator, idGen id.Generator, r *rng.Rand) *PlayerFactory {
	return &PlayerFactory{names: names, idGen: idGen, rng: r}
}

// NewPlayer rolls one player for a team with skill uniform in
// [skillLower, skillUpper], floored at the minimum skill. An empty position
// draws one from the generation odds.
func (f *PlayerFactory) NewPlayer(teamID string, skillLower, skillUpper int, position player.Position) (player.Player, error) {
	playerID, err := f.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	if position == "" {
		position = f.rollPosition()
	}

	skill := f.rng.Between(skillLower, skillUpper)
	if skill < player.MinSkill {
		skill = player.MinSkill
	}

	item := player.Player{
		ID:                playerID,
		TeamID:            teamID,
		Name:              f.names.PlayerName(),
		PreferredPosition: position,
		Skill:             skill,
		StaminaLeft:       player.MaxStamina,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("generated player invalid: %w", err)
	}

	return item, nil
}

// WithSyntheticHistory backfills plausible career counters for a freshly
// minted CPU player: appearances bounded by the team's fabricated match
// count, goals and assists scaled by position.
func (f *PlayerFactory) WithSyntheticHistory(p player.Player, teamMatchesPlayed int) player.Player {
	if teamMatchesPlayed < 0 {
		teamMatchesPlayed = 0
	}

	p.MatchesPlayed = f.rng.Between(0, teamMatchesPlayed)
	lower, upper := contributionBounds(p.PreferredPosition)
	p.GoalsScored = int(math.Round(f.rng.Float64Between(lower, upper) * float64(p.MatchesPlayed)))
	p.AssistsMade = int(math.Round(f.rng.Float64Between(lower, upper) * float64(p.MatchesPlayed)))
	return p
}

func (f *PlayerFactory) rollPosition() player.Position {
	roll := f.rng.Percent()
	switch {
	case roll <= generateGoalkeeperPercent:
		return player.PositionGoalkeeper
	case roll <= generateGoalkeeperPercent+generateDefenderPercent:
		return player.PositionDefender
	default:
		return player.PositionAttacker
	}
}

func contributionBounds(position player.Position) (float64, float64) {
	switch position {
	case player.PositionAttacker:
		return attackerContributionLower, attackerContributionUpper
	case player.PositionDefender:
		return defenderContributionLower, defenderContributionUpper
	default:
		return keeperContributionLower, keeperContributionUpper
	}
}
