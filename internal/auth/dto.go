// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

// TokenRequest carries the identity the client signed in with. Only the
// email is required; the token is not tied to a stored account.
type TokenRequest struct {
	Email string `json:"email" validate:"required,max=255"`
	Name  string `json:"name"  validate:"omitempty,max=100"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
