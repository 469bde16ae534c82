package driven

import (
	"context"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// ResourceClient issues requests against the resource service.
//
// Results are always usable zero values. Classification travels in the error:
//   - List calls return an empty slice and nil on 404.
//   - Any call answered with 403 returns domain.ErrAPIDisabled and flips APIEnabled.
//   - Get and delete calls answered with 404 return domain.ErrNotFound.
//   - Everything else wraps domain.ErrTransport.
type ResourceClient interface {
	// ListCollections lists the collections of a location.
	ListCollections(ctx context.Context, location domain.ResourcePath) ([]domain.Collection, error)

	// ListEngines lists the engines of a collection.
	ListEngines(ctx context.Context, collection domain.ResourcePath) ([]domain.Engine, error)

	// ListDataStores lists data stores under parent (a location or a collection).
	ListDataStores(ctx context.Context, parent domain.ResourcePath) ([]domain.DataStore, error)

	// GetEngine fetches an engine by full resource name.
	GetEngine(ctx context.Context, name string) (*domain.Engine, error)

	// GetDataStore fetches a data store by full resource name.
	GetDataStore(ctx context.Context, name string) (*domain.DataStore, error)

	// GetSchema fetches the default schema of a data store.
	GetSchema(ctx context.Context, dataStoreName string) (*domain.Schema, error)

	// Exists returns true if GET on name answers 200.
	Exists(ctx context.Context, name string) bool

	// CreateEngine starts engine creation and returns the operation handle.
	CreateEngine(ctx context.Context, collection domain.ResourcePath, engineID string, engine domain.Engine) (*domain.Operation, error)

	// CreateDataStore starts data store creation and returns the operation handle.
	CreateDataStore(ctx context.Context, collection domain.ResourcePath, dataStoreID string, ds domain.DataStore) (*domain.Operation, error)

	// ImportDocuments starts a documents:import on a branch and returns the operation handle.
	ImportDocuments(ctx context.Context, branch string, req domain.ImportRequest) (*domain.Operation, error)

	// ListDocuments lists the documents of a data store branch.
	ListDocuments(ctx context.Context, dataStoreName, branch string) ([]domain.Document, error)

	// GetOperation fetches the current state of an operation.
	GetOperation(ctx context.Context, name string) (*domain.Operation, error)

	// DeleteEngine deletes an engine.
	DeleteEngine(ctx context.Context, name string) error

	// DeleteDataStore deletes a data store.
	DeleteDataStore(ctx context.Context, name string) error

	// APIEnabled returns false once any call has been answered with 403.
	APIEnabled() bool
}

// OperationGetter is the slice of ResourceClient the operation poller needs.
type OperationGetter interface {
	GetOperation(ctx context.Context, name string) (*domain.Operation, error)
}
