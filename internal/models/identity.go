// Package models defines data structures shared across the colbuild client.
package models

// Identity is the minimal authenticated-user record held client-side after a
// confirmed session. The session store never fabricates one without a
// successful server response.
type Identity struct {
	Username string `json:"username"`
}

// Profile is the full account record returned by GET /api/auth/profile.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	CreatedAt     string `json:"created_at"`
	EmailVerified bool   `json:"email_verified"`
}

// ProfileUpdate carries the optional fields of a PUT /api/auth/profile
// request. Empty fields are omitted so the server only touches what the
// user actually changed.
type ProfileUpdate struct {
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// ResetToken is the ephemeral token state used by the password-reset flow.
// It is validated exactly once against the backend and never persisted.
type ResetToken struct {
	Token string
	Email string
	Valid bool
}
