package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonkarrer/brize/internal/database"
	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/repository"
	"github.com/jonkarrer/brize/internal/repository/postgres"
	"github.com/jonkarrer/brize/pkg/crypto"
)

// Admin describes the bootstrap account and its team.
type Admin struct {
	Name     string
	Email    string
	Password string
	TeamName string
}

// Repository is what a seed run writes through.
type Repository interface {
	repository.UserRepository
	repository.TeamRepository
}

// Service inserts the bootstrap rows.
type Service struct {
	admin Admin
	wait  time.Duration
	log   *slog.Logger
	hash  func(string) ([]byte, error)
}

// New constructs a Service. wait bounds how long to retry connecting.
func New(admin Admin, wait time.Duration, log *slog.Logger) Service {
	return Service{admin: admin, wait: wait, log: log, hash: crypto.HashPassword}
}

var errAdminExists = errors.New("admin user already exists")

// Run connects to databaseURL and seeds inside one transaction; on any
// failure no rows remain.
func (s Service) Run(ctx context.Context, databaseURL string) (domain.SeedResult, error) {
	conn, err := database.Connect(ctx, databaseURL, s.wait, s.log)
	if err != nil {
		return domain.SeedResult{}, err
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to start seed transaction", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	result, err := s.Seed(ctx, postgres.New(tx))
	if err != nil {
		return domain.SeedResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to commit seed data", err)
	}
	s.log.Info("seed data inserted", "user_id", result.UserID, "team_id", result.TeamID)
	return result, nil
}

// Seed inserts the admin user, the team and the membership linking them, in
// that order. Each step needs the ids produced by the previous one.
func (s Service) Seed(ctx context.Context, repo Repository) (domain.SeedResult, error) {
	switch _, err := repo.GetUserByEmail(ctx, s.admin.Email); {
	case err == nil:
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to insert user", fmt.Errorf("%s: %w", s.admin.Email, errAdminExists)).
			WithHint("This database has already been seeded")
	case !errors.Is(err, repository.ErrNotFound):
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to look up existing admin", err)
	}

	hash, err := s.hash(s.admin.Password)
	if err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to hash admin password", err)
	}

	user := &domain.User{
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to insert user", err)
	}

	team := &domain.Team{Name: s.admin.TeamName}
	if err := repo.CreateTeam(ctx, team); err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to insert team", err)
	}

	member := &domain.TeamMember{
		UserID: user.ID,
		TeamID: team.ID,
		Role:   domain.RoleAdmin,
	}
	if err := repo.AddMember(ctx, member); err != nil {
		return domain.SeedResult{}, domain.Fail(domain.KindSeedFailed, "Failed to insert team member", err)
	}

	return domain.SeedResult{UserID: user.ID, TeamID: team.ID, MemberID: member.ID}, nil
}
