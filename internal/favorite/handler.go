// AngelaMos | 2026
// handler.go

package favorite

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	authenticator func(http.Handler) http.Handler,
) {
	r.Post("/favorite", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.SelfQuery("email")).Get("/favorite", h.List)
		r.Delete("/favorite/{id}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	f := &Favorite{
		Email:             req.Email,
		BiodataID:         req.BiodataID,
		Name:              req.Name,
		PermanentDivision: req.PermanentDivision,
		Occupation:        req.Occupation,
	}

	if err := h.repo.Create(r.Context(), f); err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, core.Inserted(f.ID))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.repo.ListByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, ToFavoriteResponse(&favorites[i]))
	}
	core.OK(w, out)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid favorite id")
		return
	}

	email := middleware.GetUserEmail(r.Context())
	if err := h.repo.DeleteOwned(r.Context(), id, email); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "favorite")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, core.Deleted(1))
}
