package homodel

import "time"

type User struct {
	ID             int       `json:"id"`
	UUID           string    `json:"uuid"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	DriveIdentity  string    `json:"drive_identity"`
	ApiToken       string    `json:"-"`
	AccessToken    string    `json:"-"`
	RefreshToken   string    `json:"-"`
	TokenExpiresAt time.Time `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasDriveTokens is true when the user has completed the provider OAuth
// flow at least once and we hold credentials for them. A session receiver
// must satisfy this before a session naming them can be created.
func (u *User) HasDriveTokens() bool {
	return u.RefreshToken != ""
}
