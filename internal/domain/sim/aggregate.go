package sim

import (
	"math"
	"sort"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

// TeamSkillPlayerCount caps how many players count towards a team's
// aggregate skill: only the strongest first-team players matter, so padding
// the bench never inflates strength.
const TeamSkillPlayerCount = 10

// TeamSkill averages the skill of the team's strongest players, at most
// TeamSkillPlayerCount of them. Empty rosters rate 0.
func TeamSkill(players []player.Player) int {
	if len(players) == 0 {
		return 0
	}

	skills := make([]int, len(players))
	for i, p := range players {
		skills[i] = p.Skill
	}
	sort.Sort(sort.Reverse(sort.IntSlice(skills)))

	count := len(skills)
	if count > TeamSkillPlayerCount {
		count = TeamSkillPlayerCount
	}

	total := 0
	for _, s := range skills[:count] {
		total += s
	}
	return int(math.Round(float64(total) / float64(count)))
}

// LineupAverageSkill averages the position-adjusted skill over the occupied
// slots of a lineup. Empty slots are skipped entirely, never counted as
// zero; a fully empty lineup rates 0.
func LineupAverageSkill(slots sheet.PlayerSlots, playersByID map[string]player.Player, calc SkillCalculator) int {
	filled := 0
	total := 0

	for _, slot := range sheet.AllSlots {
		id := slots.Get(slot)
		if id == "" {
			continue
		}
		p, ok := playersByID[id]
		if !ok {
			continue
		}
		filled++
		total += calc.EffectiveSkill(p, slot)
	}

	if filled == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(filled)))
}
