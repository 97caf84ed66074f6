package user

import "time"

// User is a profile row for an identity-provider user. The id is assigned at
// registration and never changes.
type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"` // unique, lowercase-normalized
	Email           string    `json:"email"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
