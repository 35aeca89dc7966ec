package user

import "fmt"

// User is an account that can own teams.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user password hash is required")
	}
	return nil
}
