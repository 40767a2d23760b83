package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/repository"
)

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	db Querier
}

// New constructs a Repository.
func New(db Querier) *Repository {
	return &Repository{db: db}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository = (*Repository)(nil)
	_ repository.TeamRepository = (*Repository)(nil)
)

// CreateUser inserts a user and fills in its generated id and timestamp.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, user.Name, user.Email, string(user.PasswordHash), user.Role).
		Scan(&user.ID, &user.CreatedAt)
}

// GetUserByEmail fetches a live (not soft-deleted) user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, COALESCE(name, ''), email, password_hash, role, created_at
		FROM users WHERE email = $1 AND deleted_at IS NULL`
	var (
		u    domain.User
		hash string
	)
	if err := r.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.PasswordHash = []byte(hash)
	return &u, nil
}

// CreateTeam inserts a team and fills in its generated id and timestamp.
func (r *Repository) CreateTeam(ctx context.Context, team *domain.Team) error {
	const query = `INSERT INTO teams (name) VALUES ($1) RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, team.Name).Scan(&team.ID, &team.CreatedAt)
}

// AddMember links a user to a team.
func (r *Repository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	const query = `INSERT INTO team_members (user_id, team_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`
	return r.db.QueryRow(ctx, query, member.UserID, member.TeamID, member.Role).
		Scan(&member.ID, &member.JoinedAt)
}
