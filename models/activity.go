package models

import "time"

// Activity is a single audit-log entry tied to a user account.
//
// The owner reference is strong: deleting the user deletes all of its
// activities. Entries are immutable once written.
type Activity struct {
	ID int64 `json:"id"`

	// UserID is the owning account. Required.
	UserID int64 `json:"user_id"`

	// ActivityType classifies the event (login, user_creation, ...).
	ActivityType string `json:"activity_type"`

	Description string `json:"description,omitempty"`

	// IPAddress is the originating address when the event came over HTTP.
	IPAddress string `json:"ip_address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Activity model.
func (a Activity) TableName() string {
	return "activities"
}
