package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/charge"
	"github.com/stripe/stripe-go/v81/refund"
)

const currency = string(stripe.CurrencyUSD)

// StripeGateway charges and refunds cards through the Stripe API.
type StripeGateway struct {
	log zerolog.Logger
}

// NewStripeGateway configures the Stripe client with the given secret key.
func NewStripeGateway(secretKey string, log zerolog.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{log: log}
}

// Charge captures amountCents from the card behind sourceToken and returns
// the Stripe charge ID.
func (g *StripeGateway) Charge(ctx context.Context, amountCents int64, sourceToken, description string) (string, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(sourceToken); err != nil {
		return "", fmt.Errorf("stripe: set source: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		g.log.Error().Err(err).Int64("amount_cents", amountCents).Msg("stripe charge failed")
		return "", fmt.Errorf("stripe: create charge: %w", err)
	}

	g.log.Info().Str("charge_id", ch.ID).Int64("amount_cents", amountCents).Msg("stripe charge created")
	return ch.ID, nil
}

// Refund reverses a charge in full.
func (g *StripeGateway) Refund(ctx context.Context, chargeID string) error {
	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		g.log.Error().Err(err).Str("charge_id", chargeID).Msg("stripe refund failed")
		return fmt.Errorf("stripe: create refund: %w", err)
	}

	g.log.Info().Str("charge_id", chargeID).Str("refund_id", ref.ID).Msg("stripe refund created")
	return nil
}
