package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonkarrer/brize/internal/domain"
)

// Render returns the env file body: five lines in fixed order.
func Render(cfg domain.SetupConfig) []byte {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	line(domain.KeyPostgresURL, cfg.DatabaseURL)
	line(domain.KeyStripeSecretKey, cfg.StripeSecretKey)
	line(domain.KeyStripeWebhookSecret, cfg.StripeWebhookSecret)
	line(domain.KeyBaseURL, cfg.BaseURL())
	line(domain.KeyAuthSecret, cfg.AuthSecret)
	return []byte(b.String())
}

// Writer persists a SetupConfig to a fixed path.
type Writer struct {
	path string
}

// NewWriter returns a Writer for path.
func NewWriter(path string) Writer {
	return Writer{path: path}
}

// Path returns the destination file.
func (w Writer) Path() string {
	return w.path
}

// Write validates cfg and replaces the env file. The content goes to a
// temporary sibling first and is renamed into place, so readers never see a
// partially written file.
func (w Writer) Write(cfg domain.SetupConfig) error {
	if err := cfg.Validate(); err != nil {
		return domain.Fail(domain.KindInputInvalid, "Refusing to write incomplete "+w.path, err)
	}
	if err := writeAtomic(w.path, Render(cfg), 0o600); err != nil {
		return domain.Fail(domain.KindPersistFailed, "Failed to write "+w.path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
