package domain

import (
	"errors"
	"strings"
)

// Environment keys written to the generated env file, in emission order.
const (
	KeyPostgresURL         = "POSTGRES_URL"
	KeyStripeSecretKey     = "STRIPE_SECRET_KEY"
	KeyStripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
	KeyBaseURL             = "BASE_URL"
	KeyAuthSecret          = "AUTH_SECRET"
)

// SetupConfig is the set of values collected during setup.
type SetupConfig struct {
	DatabaseURL         string
	StripeSecretKey     string
	StripeWebhookSecret string
	UIPort              string
	AuthSecret          string
}

// BaseURL derives the application URL from the UI port.
func (c SetupConfig) BaseURL() string {
	return "http://localhost:" + c.UIPort
}

// Validate reports which required values are missing. The webhook secret may
// be empty when the Stripe CLI could not provide one.
func (c SetupConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.DatabaseURL) == "" {
		missing = append(missing, KeyPostgresURL)
	}
	if strings.TrimSpace(c.StripeSecretKey) == "" {
		missing = append(missing, KeyStripeSecretKey)
	}
	if strings.TrimSpace(c.UIPort) == "" {
		missing = append(missing, "UI port")
	}
	if strings.TrimSpace(c.AuthSecret) == "" {
		missing = append(missing, KeyAuthSecret)
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	return nil
}
