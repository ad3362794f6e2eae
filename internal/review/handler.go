// AngelaMos | 2026
// handler.go

package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/metro-bond/internal/core"
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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/successReview", h.List)
	r.Post("/successReview", h.Create)
	r.Get("/successReview/{id}", h.Get)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	core.OK(w, out)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rv := &Review{
		SelfBiodataID:    req.SelfBiodataID,
		PartnerBiodataID: req.PartnerBiodataID,
		CoupleImage:      req.CoupleImage,
		MarriageDate:     req.MarriageDate,
		Rating:           req.Rating,
		Story:            req.Story,
	}

	if err := h.repo.Create(r.Context(), rv); err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, core.Inserted(rv.ID))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid review id")
		return
	}

	rv, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "review")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToReviewResponse(rv))
}
