package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
)

// QuotaProjectHeader names the project billed for API quota.
const QuotaProjectHeader = "X-Goog-User-Project"

// DefaultTimeout is the HTTP request timeout of NewHTTPClient.
const DefaultTimeout = 60 * time.Second

// quotaProjectTransport stamps the quota project onto every request.
type quotaProjectTransport struct {
	project string
	base    http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *quotaProjectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.project == "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(QuotaProjectHeader, t.project)
	return t.base.RoundTrip(r)
}

// NewHTTPClient returns a client that sends "Authorization: Bearer {token}"
// from provider and the quota-project header on every request.
// A nil base means http.DefaultTransport.
func NewHTTPClient(ctx context.Context, provider driven.TokenProvider, projectID string, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &oauth2.Transport{
			Source: NewTokenSource(ctx, provider),
			Base:   &quotaProjectTransport{project: projectID, base: base},
		},
	}
}
