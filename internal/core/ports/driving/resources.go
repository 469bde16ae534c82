package driving

import (
	"context"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// ResourceService is the entry point the CLI and MCP adapters drive.
//
// List calls return whatever could be read; a non-nil error alongside a
// result is a warning (for example domain.ErrAPIDisabled) rather than a failure.
type ResourceService interface {
	// ListCollections lists collections in the configured location.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// ListEngines lists engines in a collection.
	ListEngines(ctx context.Context, collection string) ([]domain.Engine, error)

	// ListDataStores lists data stores in the configured location.
	ListDataStores(ctx context.Context) ([]domain.DataStore, error)

	// ListAll gathers collections, engines across collections, and data stores.
	ListAll(ctx context.Context) (*domain.Inventory, error)

	// DescribeEngine fetches one engine.
	DescribeEngine(ctx context.Context, name string) (*domain.Engine, error)

	// EngineFullConfig fetches an engine and each data store it serves.
	EngineFullConfig(ctx context.Context, name string) (*domain.EngineConfig, error)

	// DescribeDataStore fetches one data store with its schema attached when available.
	DescribeDataStore(ctx context.Context, name string) (*domain.DataStore, error)

	// ListDocuments lists documents in a data store branch.
	ListDocuments(ctx context.Context, dataStoreName, branch string) ([]domain.Document, error)

	// CreateEngine creates an engine and resolves its final resource name.
	CreateEngine(ctx context.Context, spec domain.EngineSpec) (*domain.EngineCreateResult, error)

	// CreateDataStoreFromSource creates a data store, resolves its name and
	// starts a document import. The import operation is left outstanding.
	CreateDataStoreFromSource(ctx context.Context, spec domain.ImportSpec) (*domain.ImportResult, error)

	// DeleteEngine deletes an engine.
	DeleteEngine(ctx context.Context, name string) domain.DeleteResult

	// DeleteDataStore deletes a data store.
	DeleteDataStore(ctx context.Context, name string) domain.DeleteResult

	// APIEnabled returns false once the resource service has answered 403.
	APIEnabled() bool

	// Principal returns the authenticated account for display.
	Principal() string

	// Config returns the configuration the service was built with.
	Config() domain.Config
}
