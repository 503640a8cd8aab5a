package ports

import "context"

// Principal is the authenticated caller. Token is forwarded to the backend.
type Principal struct {
	UserID string
	Email  string
	Token  string
}

// Auth answers who is calling and where to send anonymous users.
type Auth interface {
	// Principal returns the caller carried by ctx, if authenticated.
	Principal(ctx context.Context) (Principal, bool)

	// LoginURL builds the login redirect that returns the user to returnTo.
	LoginURL(returnTo string) string
}
