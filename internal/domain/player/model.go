package player

import "fmt"

// Position is the role a player prefers on the pitch. Exactly one per player.
type Position string

const (
	PositionAttacker   Position = "attacker"
	PositionDefender   Position = "defender"
	PositionGoalkeeper Position = "goalkeeper"
)

var AllPositions = map[Position]struct{}{
	PositionAttacker:   {},
	PositionDefender:   {},
	PositionGoalkeeper: {},
}

const (
	MinSkill   = 1
	MinStamina = 0
	MaxStamina = 100
)

// Player is one footballer on a roster. An empty TeamID means the player
// sits in the unassigned pool (sold or never picked up).
type Player struct {
	ID                string
	TeamID            string
	Name              string
	PreferredPosition Position
	Skill             int
	StaminaLeft       int
	MatchesPlayed     int
	GoalsScored       int
	AssistsMade       int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.PreferredPosition]; !ok {
		return fmt.Errorf("invalid player position: %s", p.PreferredPosition)
	}
	if p.Skill < MinSkill {
		return fmt.Errorf("player skill must be at least %d", MinSkill)
	}
	if p.StaminaLeft < MinStamina || p.StaminaLeft > MaxStamina {
		return fmt.Errorf("player stamina must be within [%d, %d]", MinStamina, MaxStamina)
	}
	if p.MatchesPlayed < 0 || p.GoalsScored < 0 || p.AssistsMade < 0 {
		return fmt.Errorf("player career counters cannot be negative")
	}

	return nil
}

func (p Player) IsGoalkeeper() bool {
	return p.PreferredPosition == PositionGoalkeeper
}
