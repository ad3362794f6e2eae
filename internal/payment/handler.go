// AngelaMos | 2026
// handler.go

package payment

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

type Guards struct {
	Authenticator func(http.Handler) http.Handler
	AdminOnly     func(http.Handler) http.Handler
	IntentLimiter func(http.Handler) http.Handler
}

func (h *Handler) RegisterRoutes(r chi.Router, g Guards) {
	intent := r
	if g.IntentLimiter != nil {
		intent = r.With(g.IntentLimiter)
	}
	intent.Post("/create-payment-intent", h.CreateIntent)
	r.Post("/payments", h.Record)

	r.Group(func(r chi.Router) {
		r.Use(g.Authenticator)

		r.With(middleware.SelfParam("email")).Get("/payments/{email}", h.ListOwn)
		r.Get("/payment/{id}", h.Get)
		r.With(middleware.SelfParam("email")).Get("/contact/{email}", h.ListOwn)
		r.Delete("/contact/{id}", h.DeleteContactRequest)

		r.Group(func(r chi.Router) {
			r.Use(g.AdminOnly)

			r.Patch("/payment-data/{id}", h.UpdateStatus)
			r.Delete("/payments/{id}", h.Delete)
			r.Get("/admin/payments", h.List)
		})
	})
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid amount")
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid amount")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, IntentResponse{ClientSecret: secret})
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Record(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, core.Inserted(p.ID))
}

// ListOwn serves both the payment history and the contact-request views;
// SelfParam has already pinned {email} to the caller.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToPaymentResponseList(payments))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid payment id")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !strings.EqualFold(p.Email, middleware.GetUserEmail(r.Context())) {
		core.Forbidden(w, "")
		return
	}

	core.OK(w, ToPaymentResponse(p))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToPaymentResponseList(payments))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid payment id")
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

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Updated(1))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid payment id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Deleted(1))
}

func (h *Handler) DeleteContactRequest(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		core.BadRequest(w, "invalid contact request id")
		return
	}

	email := middleware.GetUserEmail(r.Context())
	if err := h.service.DeleteContactRequest(r.Context(), id, email); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, core.Deleted(1))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBiodataMissing):
		core.NotFound(w, "biodata")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "payment")
	default:
		core.InternalServerError(w, r, err)
	}
}
