package domain

import "time"

// RoleAdmin is the role granted to the seeded account and its membership.
const RoleAdmin = "admin"

// User represents an application account.
type User struct {
	ID           int32
	Name         string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}
