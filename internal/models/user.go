package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an admin account on the relational backend. TOTPSecret is set
// during two-factor enrollment and only enforced once TOTPEnabled is true.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"name"`
	Role         string    `json:"role"`
	TOTPSecret   *string   `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}
