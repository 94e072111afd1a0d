package domain

import "context"

// GoogleProfile is the identity a verified OAuth exchange yields.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

// AuthResult is handed back to the client after a completed login.
type AuthResult struct {
	Token     string         `json:"token"`
	Principal *PrincipalInfo `json:"user"`
}

type AuthUsecase interface {
	// LoginWithGoogle upserts the principal for the given role from a
	// verified Google profile and mints a session token. Student logins
	// are rejected unless the email belongs to the institutional domain.
	LoginWithGoogle(ctx context.Context, role Role, profile GoogleProfile) (*AuthResult, error)

	// CurrentPrincipal resolves a token's (id, role) pair against the
	// backing collection, so revoked or deleted accounts lose access.
	CurrentPrincipal(ctx context.Context, p Principal) (*PrincipalInfo, error)
}
