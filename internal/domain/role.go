package domain

import "time"

// RoleName enumerates the platform access roles. The set is closed: every
// user record references exactly one of these, and authorization rules
// enumerate the roles they accept explicitly (no hierarchy, ADMIN included).
type RoleName string

const (
	RoleLoggedOut         RoleName = "LOGGED_OUT"
	RoleConsumer          RoleName = "CONSUMER"
	RoleConsumerPremium   RoleName = "CONSUMER_PREMIUM"
	RoleAdvertiser        RoleName = "ADVERTISER"
	RoleAdvertiserPremium RoleName = "ADVERTISER_PREMIUM"
	RoleAdmin             RoleName = "ADMIN"
)

// AllRoles lists every known role name.
func AllRoles() []RoleName {
	return []RoleName{
		RoleLoggedOut,
		RoleConsumer,
		RoleConsumerPremium,
		RoleAdvertiser,
		RoleAdvertiserPremium,
		RoleAdmin,
	}
}

// Valid reports whether the role name belongs to the closed set.
func (r RoleName) Valid() bool {
	switch r {
	case RoleLoggedOut, RoleConsumer, RoleConsumerPremium,
		RoleAdvertiser, RoleAdvertiserPremium, RoleAdmin:
		return true
	}
	return false
}

// Role is the persisted access role record.
type Role struct {
	ID        int64
	Name      RoleName
	UpdatedAt time.Time
}
