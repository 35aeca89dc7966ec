package postgres

import (
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/team"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Wins      int       `db:"wins"`
	Draws     int       `db:"draws"`
	Losses    int       `db:"losses"`
	Coins     int       `db:"coins"`
	CPUSkill  int       `db:"cpu_skill"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.PublicID,
		OwnerID:  row.OwnerID,
		Name:     row.Name,
		Wins:     row.Wins,
		Draws:    row.Draws,
		Losses:   row.Losses,
		Coins:    row.Coins,
		CPUSkill: row.CPUSkill,
	}
}
