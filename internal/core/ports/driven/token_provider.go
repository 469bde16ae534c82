package driven

import (
	"context"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// TokenProvider provides bearer tokens for the resource service.
// Implementations cache tokens and refresh them transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// Fails with domain.ErrAuth when the credential source is unavailable.
	GetToken(ctx context.Context) (string, error)

	// Principal returns the account the token belongs to, for display.
	// Returns an empty string when unknown.
	Principal() string

	// AuthMethod returns where tokens come from.
	AuthMethod() domain.AuthMethod
}
