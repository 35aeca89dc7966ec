package postgres

import (
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/user"
)

type userTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.PublicID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
	}
}
