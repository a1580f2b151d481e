package models

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /auth/register and /auth/login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

type ProfileResponse struct {
	User *UserProfile `json:"user"`
}
