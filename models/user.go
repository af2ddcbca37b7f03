package models

import "time"

// Role is the closed set of access roles a user account can hold.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMarketing Role = "marketing"
	RoleAnalyst   Role = "analyst"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMarketing, RoleAnalyst:
		return true
	}
	return false
}

// UserStatus is the closed set of account states.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Valid reports whether the status is one of the known values.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// DefaultAvatarColor returns the avatar color assigned to accounts that do
// not provide one. The palette is keyed by role; unknown roles get the
// neutral gray.
func DefaultAvatarColor(role Role) string {
	switch role {
	case RoleAdmin:
		return "#FF5630"
	case RoleMarketing:
		return "#36B37E"
	case RoleAnalyst:
		return "#6554C0"
	}
	return "#6B7280"
}

// User represents a platform account. It is the root entity of the data
// model: activities and analyses are owned by a user and die with it,
// reviews reference a user weakly and survive its deletion.
//
// PasswordHash must always hold a derived credential (bcrypt or the legacy
// hex digest), never a plaintext password.
type User struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the unique contact address.
	Email string `json:"email"`

	// PasswordHash is the stored credential. Never serialized.
	PasswordHash string `json:"-"`

	// FullName is the display name shown in listings.
	FullName string `json:"full_name"`

	// Role controls which dashboards and operations the account may use.
	Role Role `json:"role"`

	// Department is an optional organisational tag.
	Department string `json:"department,omitempty"`

	// Status is active or inactive. Inactive accounts cannot log in.
	Status UserStatus `json:"status"`

	// CreatedAt is assigned by the persistence layer at creation time.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin is updated on every successful authentication.
	// Nil until the first login.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// AvatarColor is the UI accent color for the account. Defaults to the
	// role palette when not supplied at creation.
	AvatarColor string `json:"avatar_color,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserStats aggregates account counts for the admin overview.
type UserStats struct {
	TotalUsers  int64          `json:"total_users"`
	UsersByRole map[Role]int64 `json:"users_by_role"`
}
