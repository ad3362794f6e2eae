// AngelaMos | 2026
// dto.go

package payment

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type IntentRequest struct {
	Amount json.Number `json:"amount"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CreatePaymentRequest struct {
	Email         string `json:"email"         validate:"required,email,max=255"`
	Name          string `json:"name"          validate:"omitempty,max=100"`
	BiodataID     *int64 `json:"biodataId"     validate:"omitempty,min=1"`
	Amount        int64  `json:"amount"        validate:"min=0"`
	TransactionID string `json:"transactionId" validate:"required,max=255"`
	Status        string `json:"status"        validate:"omitempty,max=50"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type PaymentResponse struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	BiodataID     *int64    `json:"biodataId"`
	Amount        int64     `json:"amount"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func ToPaymentResponse(p *Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.Name,
		BiodataID:     p.BiodataID,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPaymentResponseList(payments []Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}

// ParseAmount accepts a whole number of minor units no smaller than
// minimum.
func ParseAmount(raw json.Number, minimum int64) (int64, error) {
	f, err := raw.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %q: %w", raw, core.ErrInvalidInput)
	}

	if f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, fmt.Errorf("amount %q: %w", raw, core.ErrInvalidInput)
	}

	amount := int64(f)
	if amount < minimum {
		return 0, fmt.Errorf("amount %d below %d: %w", amount, minimum, core.ErrInvalidInput)
	}

	return amount, nil
}
