// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type TokenIssuer interface {
	CreateAccessToken(claims IdentityClaims) (string, time.Time, error)
}

type Handler struct {
	issuer    TokenIssuer
	validator *validator.Validate
}

func NewHandler(issuer TokenIssuer) *Handler {
	return &Handler{
		issuer:    issuer,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.IssueToken)
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, expiresAt, err := h.issuer.CreateAccessToken(IdentityClaims{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
