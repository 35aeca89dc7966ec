package match

import (
	"fmt"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

const MaxMinute = 40

// Result is the immutable record of one simulated match. Lineups are value
// snapshots taken at kickoff, never references into the live sheets.
type Result struct {
	ID                 string
	PlayerTeamID       string
	CPUTeamID          string
	CPUTeamName        string
	PlayerScore        int
	CPUScore           int
	PlayerAverageSkill int
	CPUAverageSkill    int
	CoinsReward        int
	PlayerLineup       sheet.PlayerSlots
	CPULineup          sheet.PlayerSlots
	PlayedAt           time.Time
}

func (r Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if r.PlayerTeamID == "" {
		return fmt.Errorf("match player team id is required")
	}
	if r.PlayerScore < 0 || r.CPUScore < 0 {
		return fmt.Errorf("match scores cannot be negative")
	}
	if r.CoinsReward < 0 {
		return fmt.Errorf("match coin reward cannot be negative")
	}
	return nil
}

// Goal is one scored goal inside a match. AssistSlot and AssistPlayerID are
// empty for unassisted goals.
type Goal struct {
	ID             string
	MatchID        string
	TeamID         string
	Minute         int
	ScorerSlot     sheet.Slot
	ScorerPlayerID string
	AssistSlot     sheet.Slot
	AssistPlayerID string
}

func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal id is required")
	}
	if g.MatchID == "" {
		return fmt.Errorf("goal match id is required")
	}
	if g.Minute < 1 || g.Minute > MaxMinute {
		return fmt.Errorf("goal minute must be within [1, %d]", MaxMinute)
	}
	if g.ScorerSlot == g.AssistSlot && g.AssistSlot != "" {
		return fmt.Errorf("goal cannot be self-assisted")
	}
	return nil
}
