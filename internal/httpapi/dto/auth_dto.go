package dto

// SignUpRequest is the /auth/signup payload.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

// SignUpResponse echoes the accepted identity, never the code itself.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest is the /auth/token payload.
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
