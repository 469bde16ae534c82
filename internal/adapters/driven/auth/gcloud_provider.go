package auth

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
)

// Ensure GcloudTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*GcloudTokenProvider)(nil)

// TokenLifetime is how long a gcloud token is reused. Real tokens live about
// an hour; stopping at 50 minutes avoids sending one that is about to expire.
const TokenLifetime = 50 * time.Minute

// FallbackPrincipal is shown when gcloud reports no active account.
const FallbackPrincipal = "user-credentials"

// GcloudSource is the slice of the gcloud CLI the provider needs.
type GcloudSource interface {
	AccessToken(ctx context.Context) (string, error)
	Account(ctx context.Context) string
}

// GcloudTokenProvider mints user tokens through gcloud and caches them.
type GcloudTokenProvider struct {
	source GcloudSource
	now    func() time.Time

	mu          sync.RWMutex
	cachedToken string
	cacheExpiry time.Time

	principalOnce sync.Once
	principal     string
	principalCtx  context.Context
}

// NewGcloudTokenProvider creates a provider backed by source.
func NewGcloudTokenProvider(ctx context.Context, source GcloudSource) *GcloudTokenProvider {
	return &GcloudTokenProvider{
		source:       source,
		now:          time.Now,
		principalCtx: ctx,
	}
}

// GetToken returns the cached token while now < expiry, otherwise mints a new
// one and sets expiry to now + TokenLifetime.
func (p *GcloudTokenProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.RLock()
	if p.cachedToken != "" && p.now().Before(p.cacheExpiry) {
		token := p.cachedToken
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedToken != "" && p.now().Before(p.cacheExpiry) {
		return p.cachedToken, nil
	}

	token, err := p.source.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	p.cachedToken = token
	p.cacheExpiry = p.now().Add(TokenLifetime)
	return token, nil
}

// Principal returns the active gcloud account, looked up once.
func (p *GcloudTokenProvider) Principal() string {
	p.principalOnce.Do(func() {
		p.principal = p.source.Account(p.principalCtx)
		if p.principal == "" {
			p.principal = FallbackPrincipal
		}
	})
	return p.principal
}

// AuthMethod returns AuthMethodGcloud.
func (p *GcloudTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodGcloud
}
