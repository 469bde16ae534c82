package auth

import (
	"context"

	"github.com/custodia-labs/gemctl/internal/adapters/driven/gcloud"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/logger"
)

// NewTokenProvider selects the credential source: Application Default
// Credentials when useServiceAccount is set, gcloud user tokens otherwise.
// Providers are built once per invocation.
func NewTokenProvider(ctx context.Context, useServiceAccount bool, cli *gcloud.CLI) (driven.TokenProvider, error) {
	if useServiceAccount {
		provider, err := NewADCTokenProvider(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("authenticating with %s", provider.AuthMethod().Description())
		return provider, nil
	}

	if cli == nil {
		cli = gcloud.New(nil)
	}
	provider := NewGcloudTokenProvider(ctx, cli)
	logger.Info("authenticating with %s", provider.AuthMethod().Description())
	return provider, nil
}
