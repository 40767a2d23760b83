package config

import "time"

// SetupConfig holds runtime configuration for the setup tool itself. It is
// distinct from domain.SetupConfig, which is the set of values the tool
// collects and writes out.
type SetupConfig struct {
	EnvFilePath         string
	ComposeFilePath     string
	ProvisionConfigPath string
	StripeBinary        string
	DockerBinary        string
	DockerHost          string
	ContainerName       string
	PostgresImage       string
	ConnectTimeout      time.Duration
	MaxURLAttempts      int
	VerifyStripeKey     bool
	AdminName           string
	AdminEmail          string
	AdminPassword       string
	TeamName            string
}

// LoadSetupConfig constructs a SetupConfig from environment variables.
func LoadSetupConfig() SetupConfig {
	return SetupConfig{
		EnvFilePath:         GetString("BRIZE_ENV_FILE", ".env"),
		ComposeFilePath:     GetString("BRIZE_COMPOSE_FILE", "docker-compose.yml"),
		ProvisionConfigPath: GetString("BRIZE_PROVISION_CONFIG", "setup/config.toml"),
		StripeBinary:        GetString("BRIZE_STRIPE_BIN", "stripe"),
		DockerBinary:        GetString("BRIZE_DOCKER_BIN", "docker"),
		DockerHost:          GetString("DOCKER_HOST", ""),
		ContainerName:       GetString("BRIZE_CONTAINER_NAME", "brize_postgres"),
		PostgresImage:       GetString("BRIZE_POSTGRES_IMAGE", "postgres:17.5-alpine3.22"),
		ConnectTimeout:      GetSeconds("BRIZE_CONNECT_TIMEOUT_SECONDS", 30*time.Second),
		MaxURLAttempts:      GetInt("BRIZE_MAX_URL_ATTEMPTS", 0),
		VerifyStripeKey:     GetBool("BRIZE_VERIFY_STRIPE_KEY", false),
		AdminName:           GetString("BRIZE_ADMIN_NAME", "admin"),
		AdminEmail:          GetString("BRIZE_ADMIN_EMAIL", "admin@test.com"),
		AdminPassword:       GetString("BRIZE_ADMIN_PASSWORD", "password"),
		TeamName:            GetString("BRIZE_TEAM_NAME", "Test Team"),
	}
}
