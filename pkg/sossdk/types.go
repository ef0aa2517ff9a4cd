package sossdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a stable machine readable code, e.g. "invalid_request".
	Error string `json:"error"`

	// ErrorDescription is human readable and safe to display.
	ErrorDescription string `json:"error_description,omitempty"`
}

type SignupRequest struct {
	Name     string   `json:"name" example:"Asha"`
	Phone    string   `json:"phone" example:"+91 98765 43210"`
	PIN      string   `json:"pin" example:"1234"`
	Contacts []string `json:"contacts"`
	Silent   bool     `json:"silent"`
}

// SignupResponse carries a session for the account and whether the signup
// created it or overwrote an existing one.
type SignupResponse struct {
	Status string `json:"status" enums:"created,updated"`
	TokenResponse
}

type LoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}

type ProfileResponse struct {
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Contacts  []string  `json:"contacts"`
	Silent    bool      `json:"silent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty"`
	Contacts []string `json:"contacts,omitempty"`
	Silent   *bool    `json:"silent,omitempty"`
}

type ChangePINRequest struct {
	OldPIN string `json:"old_pin"`
	NewPIN string `json:"new_pin"`
}

// SOSRequest triggers an alert. The sender is the token holder; Name is
// only used in the message text.
type SOSRequest struct {
	Name     string   `json:"name,omitempty"`
	Contacts []string `json:"contacts"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type SOSOutcome struct {
	Contact    string `json:"contact"`
	Status     string `json:"status" enums:"sent,simulated,failed,invalid,duplicate"`
	ProviderID string `json:"provider_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SOSResponse has one outcome per non-blank contact in request order.
// Duplicates are reported but not sent, and counted in Skipped.
type SOSResponse struct {
	Provider  string       `json:"provider"`
	Simulated bool         `json:"simulated"`
	Message   string       `json:"message"`
	Sent      int          `json:"sent"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Outcomes  []SOSOutcome `json:"outcomes"`
}

// HealthResponse is returned by /health and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	DB      string `json:"db"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}

// Float returns a pointer to f for optional coordinate fields.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }
