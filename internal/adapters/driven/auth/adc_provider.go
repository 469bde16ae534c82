package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
)

// Ensure ADCTokenProvider implements the interfaces.
var (
	_ driven.TokenProvider = (*ADCTokenProvider)(nil)
	_ driven.ConfigSource  = (*ADCTokenProvider)(nil)
)

// ADCTokenProvider serves tokens from Application Default Credentials,
// usually a service account key or the metadata server.
type ADCTokenProvider struct {
	source    oauth2.TokenSource
	principal string
	projectID string
}

// NewADCTokenProvider finds the default credentials with the cloud-platform scope.
func NewADCTokenProvider(ctx context.Context) (*ADCTokenProvider, error) {
	creds, err := google.FindDefaultCredentials(ctx, domain.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: find default credentials: %w", domain.ErrAuth, err)
	}
	return NewADCTokenProviderFromCredentials(creds), nil
}

// NewADCTokenProviderFromCredentials wraps already loaded credentials.
func NewADCTokenProviderFromCredentials(creds *google.Credentials) *ADCTokenProvider {
	return &ADCTokenProvider{
		source:    oauth2.ReuseTokenSource(nil, creds.TokenSource),
		principal: clientEmail(creds.JSON),
		projectID: creds.ProjectID,
	}
}

// GetToken returns a valid access token, refreshing through the token source.
func (p *ADCTokenProvider) GetToken(_ context.Context) (string, error) {
	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: default credentials: %w", domain.ErrAuth, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: default credentials returned an empty token", domain.ErrAuth)
	}
	return token.AccessToken, nil
}

// Principal returns the service account email when the credentials carry one.
func (p *ADCTokenProvider) Principal() string {
	return p.principal
}

// AuthMethod returns AuthMethodADC.
func (p *ADCTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodADC
}

// Lookup implements driven.ConfigSource for the credentials' project.
func (p *ADCTokenProvider) Lookup(_ context.Context, key string) (string, bool) {
	if key != driven.ConfigKeyProject || p.projectID == "" {
		return "", false
	}
	return p.projectID, true
}

// clientEmail extracts client_email from a credentials file.
func clientEmail(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var f struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return ""
	}
	return f.ClientEmail
}
