package dto

// Data Transfer Objects for the signup / token-issuance handshake

// SignupRequest: payload for user self-registration
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the submitted identity fields
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a bearer token
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=150"`
}

// TokenResponse carries the signed bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
