package gateway

import (
	"context" // Context for timeouts and cancellation
	"fmt"     // Error wrapping
	"time"    // Timeouts

	"github.com/google/uuid"                 // Idempotency keys
	"github.com/stripe/stripe-go/v76"        // Stripe API types
	"github.com/stripe/stripe-go/v76/client" // Stripe API client
)

// Intent is the part of a payment intent the client needs to confirm it
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Stripe creates payment intents through the Stripe API
type Stripe struct {
	api      *client.API
	currency string
	timeout  time.Duration
}

// NewStripe builds a client for the given secret key. Backends may be nil to
// use Stripe's defaults.
func NewStripe(secretKey, currency string, backends *stripe.Backends) *Stripe {
	return &Stripe{
		api:      client.New(secretKey, backends),
		currency: currency,
		timeout:  10 * time.Second,
	}
}

// CreateIntent requests a card payment intent for amount minor units.
// An empty idempotency key gets a fresh random one.
func (s *Stripe) CreateIntent(ctx context.Context, amount int64, idempotencyKey string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
