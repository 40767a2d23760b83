package domain

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// PostgresScheme is the URL prefix a remote connection string must contain.
const PostgresScheme = "postgres://"

// SchemaParam is the query parameter carrying the default schema.
const SchemaParam = "currentSchema"

// LocalDatabase describes a Postgres instance provisioned in a local container.
type LocalDatabase struct {
	User     string
	Password string
	Name     string
	Port     int
	Schema   string
}

// ConnectionURL derives the URL used to reach the local container. The path is
// always the default "postgres" database; Name only seeds POSTGRES_DB.
func (l LocalDatabase) ConnectionURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(l.User, l.Password),
		Host:   net.JoinHostPort("localhost", strconv.Itoa(l.Port)),
		Path:   "/postgres",
	}
	if l.Schema != "" {
		u.RawQuery = SchemaParam + "=" + url.QueryEscape(l.Schema)
	}
	return u.String()
}

// RemoteDatabase is an operator supplied connection string.
type RemoteDatabase struct {
	URL string
}

// Valid reports whether the URL carries the recognized scheme prefix.
func (r RemoteDatabase) Valid() bool {
	return strings.Contains(r.URL, PostgresScheme)
}
