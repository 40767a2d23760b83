package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonkarrer/brize/internal/domain"
	"github.com/jonkarrer/brize/internal/repository"
	"github.com/jonkarrer/brize/pkg/crypto"
	"github.com/jonkarrer/brize/pkg/logger"
)

type stubRepository struct {
	existing *domain.User
	lookup   error

	users   []domain.User
	teams   []domain.Team
	members []domain.TeamMember

	teamErr   error
	memberErr error
}

func (s *stubRepository) CreateUser(_ context.Context, user *domain.User) error {
	user.ID = int32(len(s.users) + 1)
	user.CreatedAt = time.Now()
	s.users = append(s.users, *user)
	return nil
}

func (s *stubRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.lookup != nil {
		return nil, s.lookup
	}
	if s.existing != nil && s.existing.Email == email {
		return s.existing, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubRepository) CreateTeam(_ context.Context, team *domain.Team) error {
	if s.teamErr != nil {
		return s.teamErr
	}
	team.ID = int32(len(s.teams) + 10)
	s.teams = append(s.teams, *team)
	return nil
}

func (s *stubRepository) AddMember(_ context.Context, member *domain.TeamMember) error {
	if s.memberErr != nil {
		return s.memberErr
	}
	member.ID = int32(len(s.members) + 100)
	s.members = append(s.members, *member)
	return nil
}

func testAdmin() Admin {
	return Admin{Name: "admin", Email: "admin@test.com", Password: "password", TeamName: "Test Team"}
}

func TestSeedLinksUserAndTeam(t *testing.T) {
	repo := &stubRepository{}
	svc := New(testAdmin(), 0, logger.Discard())

	result, err := svc.Seed(context.Background(), repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.users) != 1 || len(repo.teams) != 1 || len(repo.members) != 1 {
		t.Fatalf("expected one row each, got users=%d teams=%d members=%d", len(repo.users), len(repo.teams), len(repo.members))
	}
	user, team, member := repo.users[0], repo.teams[0], repo.members[0]
	if user.Role != domain.RoleAdmin || member.Role != domain.RoleAdmin {
		t.Fatalf("expected admin roles, got user=%s member=%s", user.Role, member.Role)
	}
	if member.UserID != user.ID || member.TeamID != team.ID {
		t.Fatalf("membership does not link created rows: %+v", member)
	}
	if result.UserID != user.ID || result.TeamID != team.ID || result.MemberID != member.ID {
		t.Fatalf("unexpected result: %+v", result)
	}
	if team.Name != "Test Team" {
		t.Fatalf("unexpected team name: %s", team.Name)
	}
	if err := crypto.ComparePassword(user.PasswordHash, "password"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if string(user.PasswordHash) == "password" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestSeedStopsAtFirstFailure(t *testing.T) {
	repo := &stubRepository{teamErr: errors.New("relation \"teams\" does not exist")}
	_, err := New(testAdmin(), 0, logger.Discard()).Seed(context.Background(), repo)
	if !domain.IsKind(err, domain.KindSeedFailed) {
		t.Fatalf("expected seed_failed, got %v", err)
	}
	if len(repo.members) != 0 {
		t.Fatalf("membership must not be inserted after team failure")
	}
}

func TestSeedRejectsExistingAdmin(t *testing.T) {
	repo := &stubRepository{existing: &domain.User{ID: 1, Email: "admin@test.com"}}
	_, err := New(testAdmin(), 0, logger.Discard()).Seed(context.Background(), repo)
	if !errors.Is(err, errAdminExists) {
		t.Fatalf("expected errAdminExists, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be inserted")
	}
}

func TestSeedLookupFailure(t *testing.T) {
	repo := &stubRepository{lookup: errors.New("relation \"users\" does not exist")}
	if _, err := New(testAdmin(), 0, logger.Discard()).Seed(context.Background(), repo); !domain.IsKind(err, domain.KindSeedFailed) {
		t.Fatalf("expected seed_failed, got %v", err)
	}
}

func TestRunUnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := New(testAdmin(), 0, logger.Discard()).Run(ctx, "postgres://u:p@127.0.0.1:1/postgres?connect_timeout=1")
	if !domain.IsKind(err, domain.KindConnectionFailed) {
		t.Fatalf("expected connection_failed, got %v", err)
	}
}
