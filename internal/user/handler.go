// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

const msgUserExists = "user already exists"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/admin/{email}", h.GetAdminStatus)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/", h.ListUsers)
				r.Patch("/admin/{id}", h.MakeAdmin)
				r.Patch("/premium/{id}", h.UpdatePremium)
				r.Delete("/{id}", h.DeleteUser)
			})
		})
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, created, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	if !created {
		core.OK(w, ExistingUserResponse{Message: msgUserExists})
		return
	}

	core.OK(w, core.Inserted(user.ID))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) GetAdminStatus(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, AdminStatusResponse{Admin: admin})
}

func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	if err := h.service.MakeAdmin(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Updated(1))
}

func (h *Handler) UpdatePremium(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	var req UpdatePremiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SetPremium(r.Context(), id, *req.IsPremium); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Updated(1))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Deleted(1))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "user")
		return
	}
	core.InternalServerError(w, r, err)
}
