package provision

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonkarrer/brize/internal/domain"
)

// Keys read from the provisioning config file.
const (
	keyUser     = "POSTGRES_USER"
	keyPassword = "POSTGRES_PASSWORD"
	keyDB       = "POSTGRES_DB"
	keyPort     = "POSTGRES_PORT"
	keySchema   = "DEFAULT_SCHEMA"
)

// LoadParams reads local database parameters from a TOML file. Values may be
// strings or numbers; every key except DEFAULT_SCHEMA is required.
func LoadParams(path string) (domain.LocalDatabase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.LocalDatabase{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseParams(raw)
}

// ParseParams decodes TOML provisioning parameters.
func ParseParams(raw []byte) (domain.LocalDatabase, error) {
	values := map[string]any{}
	if err := toml.Unmarshal(raw, &values); err != nil {
		return domain.LocalDatabase{}, fmt.Errorf("parse provisioning config: %w", err)
	}

	get := func(key string) string {
		v, ok := values[key]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}

	var missing []string
	for _, key := range []string{keyUser, keyPassword, keyDB, keyPort} {
		if get(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return domain.LocalDatabase{}, errors.New("provisioning config missing " + strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(get(keyPort))
	if err != nil || port < 1 || port > 65535 {
		return domain.LocalDatabase{}, fmt.Errorf("invalid %s %q", keyPort, get(keyPort))
	}

	return domain.LocalDatabase{
		User:     get(keyUser),
		Password: get(keyPassword),
		Name:     get(keyDB),
		Port:     port,
		Schema:   get(keySchema),
	}, nil
}
