// AngelaMos | 2026
// handler.go

package premium

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
)

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/premiumRequest", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/premiumRequest", h.List)
			r.Patch("/premiumRequest/{id}", h.UpdateStatus)
			r.Delete("/premiumRequest/{id}", h.Delete)
			r.Delete("/premium/{id}", h.Revoke)
		})
	})
}

// Create files a request on behalf of the caller. A second request for
// the same biodata is rejected whatever the first one's status.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	pr := &Request{
		BiodataID: req.BiodataID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(middleware.GetUserEmail(r.Context())),
		Status:    StatusPending,
	}

	if err := h.repo.Create(r.Context(), pr); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("premium request"))
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, core.Inserted(pr.ID))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	out := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, ToRequestResponse(&requests[i]))
	}
	core.OK(w, out)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid premium request id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err, "premium request")
		return
	}

	core.OK(w, core.Updated(1))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid premium request id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "premium request")
		return
	}

	core.OK(w, core.Deleted(1))
}

// Revoke takes the biodata record id, not the request id.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid biodata id")
		return
	}

	if err := h.repo.RevokeBiodata(r.Context(), id); err != nil {
		writeError(w, r, err, "biodata")
		return
	}

	core.OK(w, core.Updated(1))
}

func writeError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	resource string,
) {
	switch {
	case errors.Is(err, biodata.ErrBiodataNotFound):
		core.NotFound(w, "biodata")
		return
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
		return
	}
	core.InternalServerError(w, r, err)
}
