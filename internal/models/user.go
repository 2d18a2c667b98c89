package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает пользователя платформы: хоста или гостя.
type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	Role             string    `db:"role" json:"role"`
	Name             string    `db:"name" json:"name"`
	Contact          string    `db:"contact" json:"contact"`
	Balance          float64   `db:"balance" json:"balance"`
	Rating           float64   `db:"rating" json:"rating"`
	RatingCount      int       `db:"rating_count" json:"rating_count"`
	IdentityVerified bool      `db:"identity_verified" json:"identity_verified"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// IsHost сообщает, является ли пользователь хостом.
func (u *User) IsHost() bool {
	return u.Role == RoleHost
}
