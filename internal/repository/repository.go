package repository

import (
	"context"
	"errors"

	"github.com/jonkarrer/brize/internal/domain"
)

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TeamRepository manages teams and memberships.
type TeamRepository interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	AddMember(ctx context.Context, member *domain.TeamMember) error
}
