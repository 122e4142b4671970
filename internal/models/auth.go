package models

// PasswordRequest is the body of POST /api/validate-password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// PasswordResponse is returned by POST /api/validate-password.
type PasswordResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// AuthStatusResponse is returned by GET /api/check-auth.
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
	Guest         bool `json:"guest,omitempty"`
}
