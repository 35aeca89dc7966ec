package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
)

type sheetTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	TeamID    string         `db:"team_public_id"`
	Name      string         `db:"name"`
	SlotIDs   pq.StringArray `db:"slot_player_ids"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func sheetFromRow(row sheetTableModel) sheet.Sheet {
	return sheet.Sheet{
		ID:        row.PublicID,
		TeamID:    row.TeamID,
		Name:      row.Name,
		Slots:     slotsFromArray(row.SlotIDs),
		UpdatedAt: row.UpdatedAt,
	}
}

// Lineups persist as a text[] of five player ids in canonical slot order;
// empty strings mark unassigned slots.
func slotsToArray(slots sheet.PlayerSlots) pq.StringArray {
	out := make(pq.StringArray, 0, len(sheet.AllSlots))
	for _, slot := range sheet.AllSlots {
		out = append(out, slots.Get(slot))
	}
	return out
}

func slotsFromArray(arr pq.StringArray) sheet.PlayerSlots {
	var slots sheet.PlayerSlots
	for i, slot := range sheet.AllSlots {
		if i < len(arr) {
			slots.Set(slot, arr[i])
		}
	}
	return slots
}
