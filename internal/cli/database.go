package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/jonkarrer/brize/internal/domain"
)

// resolveDatabaseURL picks the connection URL from the flag, then POSTGRES_URL
// in the env file, then the process environment.
func resolveDatabaseURL(flagValue, envFile string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	env, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		if v := env[domain.KeyPostgresURL]; v != "" {
			return v, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", domain.Fail(domain.KindInputInvalid, "Failed to read "+envFile, err)
	}
	if v := os.Getenv(domain.KeyPostgresURL); v != "" {
		return v, nil
	}
	return "", domain.Fail(domain.KindInputInvalid, "No database URL configured", nil).
		WithHint("Pass --database-url, run brize setup, or set " + domain.KeyPostgresURL)
}
