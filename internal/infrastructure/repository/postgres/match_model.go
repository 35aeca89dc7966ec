package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

type matchTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	PlayerTeamID       string         `db:"player_team_public_id"`
	CPUTeamID          string         `db:"cpu_team_public_id"`
	CPUTeamName        string         `db:"cpu_team_name"`
	PlayerScore        int            `db:"player_score"`
	CPUScore           int            `db:"cpu_score"`
	PlayerAverageSkill int            `db:"player_average_skill"`
	CPUAverageSkill    int            `db:"cpu_average_skill"`
	CoinsReward        int            `db:"coins_reward"`
	PlayerLineup       pq.StringArray `db:"player_lineup_ids"`
	CPULineup          pq.StringArray `db:"cpu_lineup_ids"`
	PlayedAt           time.Time      `db:"played_at"`
	CreatedAt          time.Time      `db:"created_at"`
}

func matchFromRow(row matchTableModel) match.Result {
	return match.Result{
		ID:                 row.PublicID,
		PlayerTeamID:       row.PlayerTeamID,
		CPUTeamID:          row.CPUTeamID,
		CPUTeamName:        row.CPUTeamName,
		PlayerScore:        row.PlayerScore,
		CPUScore:           row.CPUScore,
		PlayerAverageSkill: row.PlayerAverageSkill,
		CPUAverageSkill:    row.CPUAverageSkill,
		CoinsReward:        row.CoinsReward,
		PlayerLineup:       slotsFromArray(row.PlayerLineup),
		CPULineup:          slotsFromArray(row.CPULineup),
		PlayedAt:           row.PlayedAt,
	}
}

type goalTableModel struct {
	ID             int64  `db:"id"`
	PublicID       string `db:"public_id"`
	MatchID        string `db:"match_public_id"`
	TeamID         string `db:"team_public_id"`
	Minute         int    `db:"minute"`
	ScorerSlot     string `db:"scorer_slot"`
	ScorerPlayerID string `db:"scorer_player_public_id"`
	AssistSlot     string `db:"assist_slot"`
	AssistPlayerID string `db:"assist_player_public_id"`
}

func goalFromRow(row goalTableModel) match.Goal {
	return match.Goal{
		ID:             row.PublicID,
		MatchID:        row.MatchID,
		TeamID:         row.TeamID,
		Minute:         row.Minute,
		ScorerSlot:     sheet.Slot(row.ScorerSlot),
		ScorerPlayerID: row.ScorerPlayerID,
		AssistSlot:     sheet.Slot(row.AssistSlot),
		AssistPlayerID: row.AssistPlayerID,
	}
}
