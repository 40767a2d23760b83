package domain

import "time"

// Team represents a collaborative group of users.
type Team struct {
	ID        int32
	Name      string
	CreatedAt time.Time
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	ID       int32
	TeamID   int32
	UserID   int32
	Role     string
	JoinedAt time.Time
}

// SeedResult reports the identifiers created by a seed run.
type SeedResult struct {
	UserID   int32
	TeamID   int32
	MemberID int32
}
