package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by both sign-in and sign-up.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
