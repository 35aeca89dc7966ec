package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

func rosterOfSkills(skills ...int) []player.Player {
	out := make([]player.Player, 0, len(skills))
	for i, s := range skills {
		out = append(out, player.Player{
			ID:                fmt.Sprintf("p-%d", i),
			Name:              fmt.Sprintf("Player %d", i),
			PreferredPosition: player.PositionAttacker,
			Skill:             s,
			StaminaLeft:       100,
		})
	}
	return out
}

func TestTeamSkill_EmptyRosterIsZero(t *testing.T) {
	require.Equal(t, 0, TeamSkill(nil))
}

func TestTeamSkill_AveragesTopTenOnly(t *testing.T) {
	// ten players at 50 plus bench padding at 1 must still rate 50
	skills := make([]int, 0, 16)
	for i := 0; i < 10; i++ {
		skills = append(skills, 50)
	}
	for i := 0; i < 6; i++ {
		skills = append(skills, 1)
	}

	require.Equal(t, 50, TeamSkill(rosterOfSkills(skills...)))
}

func TestTeamSkill_SmallRoster(t *testing.T) {
	require.Equal(t, 20, TeamSkill(rosterOfSkills(10, 30)))
}

func TestLineupAverageSkill_EmptyLineupIsZero(t *testing.T) {
	got := LineupAverageSkill(sheet.PlayerSlots{}, map[string]player.Player{}, NewSkillCalculator(true))
	require.Equal(t, 0, got)
}

func TestLineupAverageSkill_SkipsEmptySlots(t *testing.T) {
	calc := NewSkillCalculator(false)
	players := map[string]player.Player{
		"a": {ID: "a", Name: "A", PreferredPosition: player.PositionAttacker, Skill: 60, StaminaLeft: 100},
		"g": {ID: "g", Name: "G", PreferredPosition: player.PositionGoalkeeper, Skill: 40, StaminaLeft: 100},
	}
	slots := sheet.PlayerSlots{RightAttacker: "a", Goalkeeper: "g"}

	// (60 + 40) / 2, not / 5
	require.Equal(t, 50, LineupAverageSkill(slots, players, calc))
}

func TestLineupAverageSkill_UsesPositionAdjustedSkill(t *testing.T) {
	calc := NewSkillCalculator(false)
	players := map[string]player.Player{
		"a": {ID: "a", Name: "A", PreferredPosition: player.PositionAttacker, Skill: 60, StaminaLeft: 100},
	}

	natural := LineupAverageSkill(sheet.PlayerSlots{RightAttacker: "a"}, players, calc)
	inGoal := LineupAverageSkill(sheet.PlayerSlots{Goalkeeper: "a"}, players, calc)

	require.Equal(t, 60, natural)
	require.Equal(t, 15, inGoal)
}
