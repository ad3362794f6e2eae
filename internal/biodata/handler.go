// AngelaMos | 2026
// handler.go

package biodata

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
)

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
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/bioData", h.List)
	r.With(authenticator).Post("/bioData", h.Save)
	r.Get("/bioData/lastId", h.LastID)
	r.Get("/bioData/{id}", h.Get)
	r.Get("/bioDataCount", h.Count)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseListFilter(r.URL.Query())
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToBiodataResponseList(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid biodata id")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "biodata")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToBiodataResponse(b))
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req UpsertBiodataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetUserEmail(r.Context())
	if !strings.EqualFold(strings.TrimSpace(req.Email), caller) {
		core.Forbidden(w, "biodata belongs to another account")
		return
	}

	b, inserted, err := h.service.Save(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	if inserted {
		core.OK(w, core.Inserted(b.ID))
		return
	}
	core.OK(w, core.Updated(1))
}

func (h *Handler) LastID(w http.ResponseWriter, r *http.Request) {
	last, err := h.service.LastBiodataID(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, LastIDResponse{LastID: last})
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.Count(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, CountResponse{Count: total})
}
