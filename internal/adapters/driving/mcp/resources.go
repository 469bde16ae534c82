package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gemctl resources.
	uriScheme = "gemctl://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "Project, location and collection the server is bound to",
		MIMEType:    mimeJSON,
	}, s.handleConfigResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "engines/{engineId}",
		Name:        "engine",
		Description: "Configuration of a search engine",
		MIMEType:    mimeJSON,
	}, s.handleEngineResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "data-stores/{dataStoreId}",
		Name:        "data-store",
		Description: "Configuration and schema of a data store",
		MIMEType:    mimeJSON,
	}, s.handleDataStoreResource)
}

// handleConfigResource returns the resolved configuration.
func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cfg := s.ports.Resources.Config()

	info := struct {
		ProjectID  string `json:"project_id"`
		Location   string `json:"location"`
		Collection string `json:"collection"`
		APIEnabled bool   `json:"api_enabled"`
	}{
		ProjectID:  cfg.ProjectID,
		Location:   cfg.Location,
		Collection: cfg.CollectionOrDefault(),
		APIEnabled: s.ports.Resources.APIEnabled(),
	}

	return jsonResult(req.Params.URI, info)
}

// handleEngineResource returns one engine.
func (s *Server) handleEngineResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// gemctl://engines/{engineId}
	engineID := extractID(req.Params.URI, "engines/")
	if engineID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := domain.ResolveName(engineID, s.ports.Resources.Config(), domain.KindEngines)
	engine, err := s.ports.Resources.DescribeEngine(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting engine: %w", err)
	}

	return jsonResult(req.Params.URI, engine)
}

// handleDataStoreResource returns one data store.
func (s *Server) handleDataStoreResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// gemctl://data-stores/{dataStoreId}
	dataStoreID := extractID(req.Params.URI, "data-stores/")
	if dataStoreID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := domain.ResolveName(dataStoreID, s.ports.Resources.Config(), domain.KindDataStores)
	ds, err := s.ports.Resources.DescribeDataStore(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("getting data store: %w", err)
	}

	return jsonResult(req.Params.URI, ds)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractID returns the single path element after uriScheme+prefix.
func extractID(uri, prefix string) string {
	full := uriScheme + prefix
	if !strings.HasPrefix(uri, full) {
		return ""
	}

	id := strings.TrimPrefix(uri, full)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
