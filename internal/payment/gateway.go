// AngelaMos | 2026
// gateway.go

package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type Gateway interface {
	CreateIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

type StripeGateway struct {
	client   *client.API
	currency string
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeGateway{client: sc, currency: currency}
}

// CreateIntent opens a card-only payment intent and hands back the secret
// the browser confirms it with.
func (g *StripeGateway) CreateIntent(
	ctx context.Context,
	amount int64,
) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}

	return pi.ClientSecret, nil
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf(
			"stripe %s (%s): %s: %w",
			stripeErr.Type,
			stripeErr.Code,
			stripeErr.Msg,
			core.ErrProviderError,
		)
	}
	return fmt.Errorf("stripe request: %w: %w", core.ErrProviderError, err)
}

var _ Gateway = (*StripeGateway)(nil)
