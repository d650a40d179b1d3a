package domain

// Identity is the authenticated user as reported by the backend.
type Identity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	CreatedAt Timestamp `json:"createdAt"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Identity builds the in-memory identity for a fresh login. The auth
// response carries no creation time, so CreatedAt stays zero.
func (r AuthResponse) Identity() Identity {
	return Identity{
		ID:      r.UserID,
		Name:    r.Name,
		Email:   r.Email,
		Enabled: true,
	}
}

// Credential and name limits enforced by the login and register forms.
const (
	MinPasswordLen = 6
	MinNameLen     = 2
	MaxNameLen     = 100
)
