package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	BaseSimple
	Username     string    `db:"username"`
	PhoneNumber  string    `db:"phone_number"`
	DateOfBirth  time.Time `db:"dob"`
	PasswordHash string    `db:"password"`
}

// AuthToken records a token issued by a successful signin.
type AuthToken struct {
	BaseSimple
	Token  string    `db:"token"`
	UserID uuid.UUID `db:"user_id"`
}
