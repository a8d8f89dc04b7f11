package domain

import "time"

// UserStatus represents lifecycle states for a platform account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the credential record the authentication gateway resolves
// principals from. Role carries the current role name resolved through
// the roles table; it is authoritative over any role claim embedded in
// an outstanding token.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
	Role         RoleName
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
