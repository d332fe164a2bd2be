package types

import "time"

// UserResponse is the public shape of a user. Password hashes never leave the
// handlers, so responses marshal this instead of models.User.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
