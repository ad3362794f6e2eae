// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Name     string `json:"name"     validate:"omitempty,max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,max=2048"`
}

type UpdatePremiumRequest struct {
	IsPremium *bool `json:"isPremium" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      string    `json:"role"`
	IsPremium bool      `json:"isPremium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExistingUserResponse answers a repeated sign-in. InsertedID is always
// null so clients can tell it apart from a fresh insert.
type ExistingUserResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role,
		IsPremium: u.IsPremium,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
