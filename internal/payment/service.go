// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type Service struct {
	repo      Repository
	gateway   Gateway
	minAmount int64
}

func NewService(repo Repository, gateway Gateway, minAmount int64) *Service {
	return &Service{
		repo:      repo,
		gateway:   gateway,
		minAmount: minAmount,
	}
}

// CreateIntent rejects amounts below the minimum without calling the
// provider.
func (s *Service) CreateIntent(
	ctx context.Context,
	raw json.Number,
) (secret string, err error) {
	ctx, span := core.StartSpan(ctx, "payment.create_intent")
	defer func() { core.EndSpan(span, err) }()

	amount, err := ParseAmount(raw, s.minAmount)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int64("payment.amount", amount))

	secret, err = s.gateway.CreateIntent(ctx, amount)
	if err != nil {
		return "", fmt.Errorf("create intent: %w", err)
	}

	return secret, nil
}

func (s *Service) Record(
	ctx context.Context,
	req CreatePaymentRequest,
) (*Payment, error) {
	status := req.Status
	if status == "" {
		status = StatusPending
	}

	p := &Payment{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Name:          req.Name,
		BiodataID:     req.BiodataID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        status,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Payment, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(email))
}

func (s *Service) List(ctx context.Context) ([]Payment, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id, status string,
) (err error) {
	ctx, span := core.StartSpan(ctx, "payment.update_status",
		attribute.String("payment.id", id),
		attribute.String("payment.status", status),
	)
	defer func() { core.EndSpan(span, err) }()

	return s.repo.UpdateStatusAndPromote(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) DeleteContactRequest(ctx context.Context, id, email string) error {
	return s.repo.DeleteOwned(ctx, id, strings.ToLower(email))
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Revenue(ctx context.Context) (int64, error) {
	return s.repo.SumAmounts(ctx)
}
