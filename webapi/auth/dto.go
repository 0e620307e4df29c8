package auth

// LoginRequest is the body for POST /auth/login. Identity is a username or
// an email address.
type LoginRequest struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the minted JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
