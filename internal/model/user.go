package model

import "time"

// User is a journal owner.
//
// Accounts come from two identity sources: email + password, or GitHub
// OAuth. GitHubID is zero for password accounts and PasswordHash is empty for
// GitHub accounts; the storage layer maps both zero values to NULL so the
// UNIQUE constraints only apply to real values.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	GitHubID     int64     `json:"githubId,omitempty"`
	Login        string    `json:"login,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
