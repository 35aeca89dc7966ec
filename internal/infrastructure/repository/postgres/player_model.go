package postgres

import (
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/player"
)

type playerTableModel struct {
	ID                int64     `db:"id"`
	PublicID          string    `db:"public_id"`
	TeamID            string    `db:"team_public_id"`
	Name              string    `db:"name"`
	PreferredPosition string    `db:"preferred_position"`
	Skill             int       `db:"skill"`
	StaminaLeft       int       `db:"stamina_left"`
	MatchesPlayed     int       `db:"matches_played"`
	GoalsScored       int       `db:"goals_scored"`
	AssistsMade       int       `db:"assists_made"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:                row.PublicID,
		TeamID:            row.TeamID,
		Name:              row.Name,
		PreferredPosition: player.Position(row.PreferredPosition),
		Skill:             row.Skill,
		StaminaLeft:       row.StaminaLeft,
		MatchesPlayed:     row.MatchesPlayed,
		GoalsScored:       row.GoalsScored,
		AssistsMade:       row.AssistsMade,
	}
}
