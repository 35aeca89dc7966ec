package team

import "fmt"

const (
	NameMinLength = 3
	NameMaxLength = 32
)

// Team is one club. An empty OwnerID marks a CPU-controlled opponent;
// CPUSkill is the aggregate skill such a team was generated at and is the
// key used to reuse opponents between matches. Owned teams keep it zero.
type Team struct {
	ID       string
	OwnerID  string
	Name     string
	Wins     int
	Draws    int
	Losses   int
	Coins    int
	CPUSkill int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if len(t.Name) < NameMinLength || len(t.Name) > NameMaxLength {
		return fmt.Errorf("team name must be between %d and %d characters", NameMinLength, NameMaxLength)
	}
	if t.Coins < 0 {
		return fmt.Errorf("team coins cannot be negative")
	}
	if t.Wins < 0 || t.Draws < 0 || t.Losses < 0 {
		return fmt.Errorf("team record counters cannot be negative")
	}

	return nil
}

func (t Team) IsCPU() bool {
	return t.OwnerID == ""
}

func (t Team) MatchesPlayed() int {
	return t.Wins + t.Draws + t.Losses
}
