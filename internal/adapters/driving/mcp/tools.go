package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// EmptyInput is the input schema for tools that take no arguments.
type EmptyInput struct{}

// EngineInput identifies an engine.
type EngineInput struct {
	Engine string `json:"engine" jsonschema:"engine ID or full resource name"`
	Full   bool   `json:"full,omitempty" jsonschema:"also fetch every data store the engine serves"`
}

// DataStoreInput identifies a data store.
type DataStoreInput struct {
	DataStore string `json:"data_store" jsonschema:"data store ID or full resource name"`
}

// DocumentsInput selects a data store branch.
type DocumentsInput struct {
	DataStore string `json:"data_store" jsonschema:"data store ID or full resource name"`
	Branch    string `json:"branch,omitempty" jsonschema:"branch name (default default_branch)"`
}

// ResourceSummary is one row of a list result.
type ResourceSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Type        string `json:"type,omitempty"`
}

// ListOutput is the output schema for list tools.
type ListOutput struct {
	Items   []ResourceSummary `json:"items"`
	Count   int               `json:"count"`
	Warning string            `json:"warning,omitempty"`
}

// InventoryOutput is the output schema for the list_all tool.
type InventoryOutput struct {
	Collections []ResourceSummary `json:"collections"`
	Engines     []ResourceSummary `json:"engines"`
	DataStores  []ResourceSummary `json:"data_stores"`
	Warning     string            `json:"warning,omitempty"`
}

// EngineOutput is the output schema for describe_engine.
type EngineOutput struct {
	Engine     *domain.Engine     `json:"engine"`
	DataStores []domain.DataStore `json:"data_stores,omitempty"`
}

// DataStoreOutput is the output schema for describe_data_store.
type DataStoreOutput struct {
	DataStore *domain.DataStore `json:"data_store"`
}

// DocumentSummary is one document of a list_documents result.
type DocumentSummary struct {
	ID        string `json:"id"`
	URI       string `json:"uri,omitempty"`
	IndexTime string `json:"index_time,omitempty"`
}

// DocumentsOutput is the output schema for list_documents.
type DocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
	Warning   string            `json:"warning,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
// Every tool is read-only; creating and deleting stay on the command line.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List collections in the configured project and location",
	}, s.handleListCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_engines",
		Description: "List search engines in the configured collection",
	}, s.handleListEngines)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_data_stores",
		Description: "List data stores in the configured project and location",
	}, s.handleListDataStores)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_all",
		Description: "List collections, engines across all collections, and data stores",
	}, s.handleListAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe_engine",
		Description: "Fetch the configuration of a search engine",
	}, s.handleDescribeEngine)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe_data_store",
		Description: "Fetch the configuration and schema of a data store",
	}, s.handleDescribeDataStore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents in a data store branch",
	}, s.handleListDocuments)
}

func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListOutput, error) {
	collections, err := s.ports.Resources.ListCollections(ctx)
	warning, err := splitWarning(err)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing collections: %w", err)
	}
	items := collectionSummaries(collections)
	return nil, ListOutput{Items: items, Count: len(items), Warning: warning}, nil
}

func (s *Server) handleListEngines(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListOutput, error) {
	engines, err := s.ports.Resources.ListEngines(ctx, "")
	warning, err := splitWarning(err)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing engines: %w", err)
	}
	items := engineSummaries(engines)
	return nil, ListOutput{Items: items, Count: len(items), Warning: warning}, nil
}

func (s *Server) handleListDataStores(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListOutput, error) {
	dataStores, err := s.ports.Resources.ListDataStores(ctx)
	warning, err := splitWarning(err)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing data stores: %w", err)
	}
	items := dataStoreSummaries(dataStores)
	return nil, ListOutput{Items: items, Count: len(items), Warning: warning}, nil
}

func (s *Server) handleListAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, InventoryOutput, error) {
	inv, err := s.ports.Resources.ListAll(ctx)
	if inv == nil {
		if err != nil {
			return nil, InventoryOutput{}, fmt.Errorf("listing resources: %w", err)
		}
		inv = &domain.Inventory{}
	}

	out := InventoryOutput{
		Collections: collectionSummaries(inv.Collections),
		Engines:     engineSummaries(inv.Engines),
		DataStores:  dataStoreSummaries(inv.DataStores),
	}
	// Partial inventories are returned with the failures as a warning.
	if err != nil {
		out.Warning = err.Error()
	}
	return nil, out, nil
}

func (s *Server) handleDescribeEngine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EngineInput,
) (*mcp.CallToolResult, EngineOutput, error) {
	if input.Engine == "" {
		return nil, EngineOutput{}, errors.New("engine is required")
	}
	name := domain.ResolveName(input.Engine, s.ports.Resources.Config(), domain.KindEngines)

	if input.Full {
		cfg, err := s.ports.Resources.EngineFullConfig(ctx, name)
		if err != nil {
			return nil, EngineOutput{}, fmt.Errorf("describing engine: %w", err)
		}
		return nil, EngineOutput{Engine: cfg.Engine, DataStores: cfg.DataStores}, nil
	}

	engine, err := s.ports.Resources.DescribeEngine(ctx, name)
	if err != nil {
		return nil, EngineOutput{}, fmt.Errorf("describing engine: %w", err)
	}
	return nil, EngineOutput{Engine: engine}, nil
}

func (s *Server) handleDescribeDataStore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DataStoreInput,
) (*mcp.CallToolResult, DataStoreOutput, error) {
	if input.DataStore == "" {
		return nil, DataStoreOutput{}, errors.New("data_store is required")
	}
	name := domain.ResolveName(input.DataStore, s.ports.Resources.Config(), domain.KindDataStores)

	ds, err := s.ports.Resources.DescribeDataStore(ctx, name)
	if err != nil {
		return nil, DataStoreOutput{}, fmt.Errorf("describing data store: %w", err)
	}
	return nil, DataStoreOutput{DataStore: ds}, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentsInput,
) (*mcp.CallToolResult, DocumentsOutput, error) {
	if input.DataStore == "" {
		return nil, DocumentsOutput{}, errors.New("data_store is required")
	}
	name := domain.ResolveName(input.DataStore, s.ports.Resources.Config(), domain.KindDataStores)

	docs, err := s.ports.Resources.ListDocuments(ctx, name, input.Branch)
	warning, err := splitWarning(err)
	if err != nil {
		return nil, DocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	out := DocumentsOutput{
		Documents: make([]DocumentSummary, len(docs)),
		Count:     len(docs),
		Warning:   warning,
	}
	for i := range docs {
		out.Documents[i] = DocumentSummary{
			ID:        docs[i].ID,
			URI:       docs[i].URI(),
			IndexTime: docs[i].IndexTime,
		}
	}
	return nil, out, nil
}

// splitWarning turns a disabled API into a warning string; other errors pass through.
func splitWarning(err error) (string, error) {
	if err != nil && errors.Is(err, domain.ErrAPIDisabled) {
		return "Discovery Engine API is not enabled for this project", nil
	}
	return "", err
}

func collectionSummaries(collections []domain.Collection) []ResourceSummary {
	out := make([]ResourceSummary, len(collections))
	for i := range collections {
		out[i] = ResourceSummary{
			ID:          domain.ShortName(collections[i].Name),
			Name:        collections[i].Name,
			DisplayName: collections[i].DisplayName,
		}
	}
	return out
}

func engineSummaries(engines []domain.Engine) []ResourceSummary {
	out := make([]ResourceSummary, len(engines))
	for i := range engines {
		out[i] = ResourceSummary{
			ID:          domain.ShortName(engines[i].Name),
			Name:        engines[i].Name,
			DisplayName: engines[i].DisplayName,
			Type:        engines[i].SolutionType,
		}
	}
	return out
}

func dataStoreSummaries(dataStores []domain.DataStore) []ResourceSummary {
	out := make([]ResourceSummary, len(dataStores))
	for i := range dataStores {
		out[i] = ResourceSummary{
			ID:          domain.ShortName(dataStores[i].Name),
			Name:        dataStores[i].Name,
			DisplayName: dataStores[i].DisplayName,
			Type:        dataStores[i].ContentConfig,
		}
	}
	return out
}
