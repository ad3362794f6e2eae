// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	PhotoURL  string    `db:"photo_url"`
	Role      string    `db:"role"`
	IsPremium bool      `db:"is_premium"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
