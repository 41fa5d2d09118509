// Package models contains data structures for the application's domain models.
package models

// User represents a registered account in the Trinethra application.
//
// The JSON field names match the persisted storage format, so records written
// by earlier versions of the app decode unchanged.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	IsVerified  bool   `json:"isVerified,omitempty"`
	// Password holds the bcrypt hash of the account secret. It round-trips
	// through the account registry but must never be persisted as part of
	// the active session.
	Password string `json:"password,omitempty"`
}

// WithoutSecret returns a copy of the user with the credential stripped.
// Every session write and every value handed back to callers goes through
// this.
func (u User) WithoutSecret() User {
	u.Password = ""
	return u
}
