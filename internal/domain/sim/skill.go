package sim

import (
	"math"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

// Positional-fit multipliers. Natural position beats a same-category swap,
// which beats a keeper leaving the goal; an outfielder between the posts is
// worst of all.
const (
	multiplierFavouritePosition = 1.0
	multiplierGKPlayingInfield  = 0.5
	multiplierWrongInfieldSide  = 0.75
	multiplierInfieldAsGK       = 0.25
)

// SkillCalculator derives the effective, position-adjusted skill a player
// brings to a specific slot. StaminaEffect toggles the fatigue multiplier.
type SkillCalculator struct {
	StaminaEffect bool
}

func NewSkillCalculator(staminaEffect bool) SkillCalculator {
	return SkillCalculator{StaminaEffect: staminaEffect}
}

// EffectiveSkill applies fatigue and positional fit to the base skill and
// rounds to an integer, never below player.MinSkill.
func (c SkillCalculator) EffectiveSkill(p player.Player, slot sheet.Slot) int {
	skill := float64(p.Skill)

	if c.StaminaEffect {
		skill *= float64(p.StaminaLeft) / float64(player.MaxStamina)
	}

	skill *= positionMultiplier(p, slot)

	res := int(math.Round(skill))
	if res < player.MinSkill {
		return player.MinSkill
	}
	return res
}

func positionMultiplier(p player.Player, slot sheet.Slot) float64 {
	if slot == sheet.SlotGoalkeeper {
		if p.IsGoalkeeper() {
			return multiplierFavouritePosition
		}
		return multiplierInfieldAsGK
	}

	if p.IsGoalkeeper() {
		return multiplierGKPlayingInfield
	}
	if p.PreferredPosition == slot.Category() {
		return multiplierFavouritePosition
	}
	return multiplierWrongInfieldSide
}
