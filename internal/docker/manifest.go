package docker

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jonkarrer/brize/internal/domain"
)

const (
	serviceName   = "postgres"
	volumeName    = "postgres_data"
	postgresPort  = 5432
	postgresData  = "/var/lib/postgresql/data"
	restartPolicy = "unless-stopped"
)

// Manifest is a compose document with a single Postgres service.
type Manifest struct {
	Services map[string]Service  `yaml:"services"`
	Volumes  map[string]struct{} `yaml:"volumes"`
}

// Service is one compose service definition.
type Service struct {
	Image         string            `yaml:"image"`
	ContainerName string            `yaml:"container_name,omitempty"`
	Restart       string            `yaml:"restart,omitempty"`
	Environment   map[string]string `yaml:"environment"`
	Ports         []string          `yaml:"ports"`
	Volumes       []string          `yaml:"volumes"`
}

// NewPostgresManifest describes a Postgres container for db.
func NewPostgresManifest(db domain.LocalDatabase, image, containerName string) Manifest {
	env := map[string]string{
		"POSTGRES_USER":     db.User,
		"POSTGRES_PASSWORD": db.Password,
		"POSTGRES_DB":       db.Name,
	}
	if db.Schema != "" {
		env["DEFAULT_SCHEMA"] = db.Schema
	}
	return Manifest{
		Services: map[string]Service{
			serviceName: {
				Image:         image,
				ContainerName: containerName,
				Restart:       restartPolicy,
				Environment:   env,
				Ports:         []string{strconv.Itoa(db.Port) + ":" + strconv.Itoa(postgresPort)},
				Volumes:       []string{volumeName + ":" + postgresData},
			},
		},
		Volumes: map[string]struct{}{volumeName: {}},
	}
}

// Render encodes the manifest as YAML.
func (m Manifest) Render() ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode compose manifest: %w", err)
	}
	return out, nil
}

// WriteFile renders the manifest to path, replacing any existing file.
func (m Manifest) WriteFile(path string) error {
	out, err := m.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
