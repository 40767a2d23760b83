package provision

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseParamsAcceptsNumericAndStringPort(t *testing.T) {
	for _, port := range []string{`5433`, `"5433"`} {
		raw := `POSTGRES_USER = "u"
POSTGRES_PASSWORD = "p"
POSTGRES_DB = "d"
POSTGRES_PORT = ` + port + `
DEFAULT_SCHEMA = "s"
`
		db, err := ParseParams([]byte(raw))
		if err != nil {
			t.Fatalf("port %s: unexpected error: %v", port, err)
		}
		if db.User != "u" || db.Password != "p" || db.Name != "d" || db.Port != 5433 || db.Schema != "s" {
			t.Fatalf("port %s: unexpected params: %+v", port, db)
		}
	}
}

func TestParseParamsReportsMissingKeys(t *testing.T) {
	_, err := ParseParams([]byte(`POSTGRES_USER = "u"`))
	if err == nil {
		t.Fatalf("expected missing keys error")
	}
	for _, key := range []string{"POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_PORT"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestParseParamsRejectsBadPort(t *testing.T) {
	raw := `POSTGRES_USER = "u"
POSTGRES_PASSWORD = "p"
POSTGRES_DB = "d"
POSTGRES_PORT = "not-a-port"
`
	if _, err := ParseParams([]byte(raw)); err == nil {
		t.Fatalf("expected invalid port error")
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	if _, err := LoadParams(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
