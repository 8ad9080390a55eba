package dto

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the login success payload
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse is the backend's error payload shape
type ErrorResponse struct {
	Detail string `json:"detail"`
}
