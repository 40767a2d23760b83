package stripecli

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// KeyVerifier checks a secret key against the Stripe API.
type KeyVerifier struct {
	backends *stripe.Backends
}

// NewKeyVerifier returns a verifier; nil backends use the live Stripe API.
func NewKeyVerifier(backends *stripe.Backends) KeyVerifier {
	return KeyVerifier{backends: backends}
}

// Verify fetches the account balance, which any valid secret or restricted
// key with read access can do.
func (v KeyVerifier) Verify(ctx context.Context, key string) error {
	sc := client.New(key, v.backends)
	params := &stripe.BalanceParams{}
	params.Context = ctx
	if _, err := sc.Balance.Get(params); err != nil {
		return fmt.Errorf("verify stripe key: %w", err)
	}
	return nil
}
