package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/core/ports/driving"
	"github.com/custodia-labs/gemctl/internal/logger"
)

// Ensure ResourceService implements the interface.
var _ driving.ResourceService = (*ResourceService)(nil)

// ResourceService runs resource workflows against the resource service.
type ResourceService struct {
	cfg     domain.Config
	client  driven.ResourceClient
	poller  *OperationPoller
	tokens  driven.TokenProvider
	maxWait time.Duration
}

// NewResourceService creates a resource service.
// tokens may be nil; it is only used to report the principal.
func NewResourceService(
	cfg domain.Config,
	client driven.ResourceClient,
	poller *OperationPoller,
	tokens driven.TokenProvider,
) *ResourceService {
	if poller == nil {
		poller = NewOperationPoller(client, nil)
	}
	return &ResourceService{
		cfg:     cfg,
		client:  client,
		poller:  poller,
		tokens:  tokens,
		maxWait: DefaultMaxWait,
	}
}

// SetMaxWait overrides the polling budget for create operations.
func (s *ResourceService) SetMaxWait(d time.Duration) {
	if d > 0 {
		s.maxWait = d
	}
}

// Config returns the configuration the service was built with.
func (s *ResourceService) Config() domain.Config {
	return s.cfg
}

// APIEnabled returns false once the resource service has answered 403.
func (s *ResourceService) APIEnabled() bool {
	return s.client.APIEnabled()
}

// Principal returns the authenticated account for display.
func (s *ResourceService) Principal() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.Principal()
}

func (s *ResourceService) locationPath() domain.ResourcePath {
	return domain.LocationPath(s.cfg.ProjectID, s.cfg.Location)
}

func (s *ResourceService) collectionPath(collection string) domain.ResourcePath {
	if collection == "" {
		collection = s.cfg.CollectionOrDefault()
	}
	return domain.CollectionPath(s.cfg.ProjectID, s.cfg.Location, collection)
}

// ListCollections lists collections in the configured location.
func (s *ResourceService) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.client.ListCollections(ctx, s.locationPath())
}

// ListEngines lists engines in a collection. An empty collection means the configured one.
func (s *ResourceService) ListEngines(ctx context.Context, collection string) ([]domain.Engine, error) {
	return s.client.ListEngines(ctx, s.collectionPath(collection))
}

// ListDataStores lists data stores in the configured location.
func (s *ResourceService) ListDataStores(ctx context.Context) ([]domain.DataStore, error) {
	return s.client.ListDataStores(ctx, s.locationPath())
}

// ListAll gathers collections, engines across default_collection and every
// listed collection, and data stores. Engines are deduplicated by name.
// Partial results are returned together with the joined warnings. An
// authentication failure or a cancelled context stops the walk and returns
// no inventory.
func (s *ResourceService) ListAll(ctx context.Context) (*domain.Inventory, error) {
	var errs []error

	collections, err := s.ListCollections(ctx)
	if err != nil {
		if abortsListing(ctx, err) {
			return nil, fmt.Errorf("list collections: %w", err)
		}
		errs = append(errs, fmt.Errorf("list collections: %w", err))
	}

	ids := []string{domain.DefaultCollection}
	for i := range collections {
		if id := domain.ShortName(collections[i].Name); id != "" && id != domain.DefaultCollection {
			ids = append(ids, id)
		}
	}

	seen := make(map[string]bool)
	var engines []domain.Engine
	for _, id := range ids {
		found, err := s.ListEngines(ctx, id)
		if err != nil {
			if abortsListing(ctx, err) {
				return nil, fmt.Errorf("list engines in %s: %w", id, err)
			}
			errs = append(errs, fmt.Errorf("list engines in %s: %w", id, err))
		}
		for i := range found {
			if seen[found[i].Name] {
				continue
			}
			seen[found[i].Name] = true
			engines = append(engines, found[i])
		}
	}

	dataStores, err := s.ListDataStores(ctx)
	if err != nil {
		if abortsListing(ctx, err) {
			return nil, fmt.Errorf("list data stores: %w", err)
		}
		errs = append(errs, fmt.Errorf("list data stores: %w", err))
	}

	inv := &domain.Inventory{
		Collections: nonNil(collections),
		Engines:     nonNil(engines),
		DataStores:  nonNil(dataStores),
	}
	return inv, errors.Join(errs...)
}

// abortsListing reports whether err makes every further list call pointless.
func abortsListing(ctx context.Context, err error) bool {
	return errors.Is(err, domain.ErrAuth) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

// DescribeEngine fetches one engine by full name.
func (s *ResourceService) DescribeEngine(ctx context.Context, name string) (*domain.Engine, error) {
	return s.client.GetEngine(ctx, name)
}

// EngineFullConfig fetches an engine and every data store listed in its
// dataStoreIds, with schemas attached. Data stores that cannot be read are skipped.
func (s *ResourceService) EngineFullConfig(ctx context.Context, name string) (*domain.EngineConfig, error) {
	engine, err := s.client.GetEngine(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not fetch engine details: %w", err)
	}

	path, err := domain.ParseResourcePath(name)
	if err != nil {
		return nil, err
	}
	project, err := path.Value(domain.SegmentProjects)
	if err != nil {
		return nil, err
	}
	location, err := path.Value(domain.SegmentLocations)
	if err != nil {
		return nil, err
	}
	collection, err := path.Value(domain.SegmentCollections)
	if err != nil {
		return nil, err
	}

	cfg := &domain.EngineConfig{
		Engine:     engine,
		DataStores: []domain.DataStore{},
	}

	logger.Info("engine %s serves %d data stores", name, len(engine.DataStoreIDs))
	for _, id := range engine.DataStoreIDs {
		dsName := domain.ResourceName(project, location, collection, domain.KindDataStores, id)
		ds, err := s.DescribeDataStore(ctx, dsName)
		if err != nil {
			logger.Warn("skipping data store %s: %v", dsName, err)
			continue
		}
		cfg.DataStores = append(cfg.DataStores, *ds)
	}

	return cfg, nil
}

// DescribeDataStore fetches one data store and attaches its schema when one exists.
func (s *ResourceService) DescribeDataStore(ctx context.Context, name string) (*domain.DataStore, error) {
	ds, err := s.client.GetDataStore(ctx, name)
	if err != nil {
		return nil, err
	}

	schema, err := s.client.GetSchema(ctx, name)
	if err != nil {
		logger.Debug("no schema for %s: %v", name, err)
		return ds, nil
	}
	ds.Schema = schema
	return ds, nil
}

// ListDocuments lists documents in a data store branch. An empty branch means default_branch.
func (s *ResourceService) ListDocuments(ctx context.Context, dataStoreName, branch string) ([]domain.Document, error) {
	if branch == "" {
		branch = domain.DefaultBranch
	}
	return s.client.ListDocuments(ctx, dataStoreName, branch)
}

// CreateEngine creates a search engine and resolves its final name.
func (s *ResourceService) CreateEngine(ctx context.Context, spec domain.EngineSpec) (*domain.EngineCreateResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	op, err := s.client.CreateEngine(ctx, s.collectionPath(""), spec.EngineID, spec.Engine())
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	logger.Info("engine creation operation started: %s", op.Name)

	name, err := s.resolveCreated(ctx, op, domain.KindEngines, spec.EngineID)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine or verify its existence: %w", err)
	}

	return &domain.EngineCreateResult{
		EngineName: name,
		Status:     domain.StatusSuccess,
	}, nil
}

// CreateDataStoreFromSource creates a data store, resolves its name and
// starts importing sourceURI into its default branch. A data store that was
// created before the import failed is reported in the result and the error;
// it is not rolled back.
func (s *ResourceService) CreateDataStoreFromSource(ctx context.Context, spec domain.ImportSpec) (*domain.ImportResult, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	op, err := s.client.CreateDataStore(ctx, s.collectionPath(""), spec.DataStoreID, domain.NewSearchDataStore(spec.DisplayName))
	if err != nil {
		return nil, fmt.Errorf("failed to create data store: %w", err)
	}
	logger.Info("data store creation operation started: %s", op.Name)

	name, err := s.resolveCreated(ctx, op, domain.KindDataStores, spec.DataStoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to create data store or verify its existence: %w", err)
	}
	logger.Info("data store created: %s", name)

	branch := domain.BranchName(name, domain.DefaultBranch)
	importOp, err := s.client.ImportDocuments(ctx, branch, spec.ImportRequest())
	if err != nil {
		return &domain.ImportResult{
			DataStoreName: name,
			Status:        domain.StatusError,
		}, fmt.Errorf("data store %s was created but failed to import documents: %w", name, err)
	}
	logger.Info("document import operation started: %s", importOp.Name)

	return &domain.ImportResult{
		DataStoreName:   name,
		ImportOperation: importOp,
		Status:          domain.StatusSuccess,
	}, nil
}

// resolveCreated waits for a create operation and returns the created name.
// Unless the operation reported an explicit error, a failed resolution falls
// back to building the expected name and checking that it exists.
func (s *ResourceService) resolveCreated(
	ctx context.Context,
	op *domain.Operation,
	kind domain.ResourceKind,
	id string,
) (string, error) {
	name, err := s.poller.Await(ctx, op.Name, id, kind, s.maxWait)
	if err == nil {
		return name, nil
	}
	if errors.Is(err, domain.ErrOperationFailed) {
		return "", err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	expected := domain.ResourceName(s.cfg.ProjectID, s.cfg.Location, s.cfg.CollectionOrDefault(), kind, id)
	logger.Warn("operation not resolved (%v), verifying %s", err, expected)
	if !s.client.Exists(ctx, expected) {
		return "", fmt.Errorf("%s not found after %w", expected, err)
	}
	return expected, nil
}

// DeleteEngine deletes an engine.
func (s *ResourceService) DeleteEngine(ctx context.Context, name string) domain.DeleteResult {
	return deleteResult("Engine", s.client.DeleteEngine(ctx, name))
}

// DeleteDataStore deletes a data store.
func (s *ResourceService) DeleteDataStore(ctx context.Context, name string) domain.DeleteResult {
	return deleteResult("Data store", s.client.DeleteDataStore(ctx, name))
}

func deleteResult(label string, err error) domain.DeleteResult {
	switch {
	case err == nil:
		return domain.DeleteResult{Status: domain.StatusSuccess, Message: label + " deleted successfully"}
	case errors.Is(err, domain.ErrNotFound):
		return domain.DeleteResult{Status: domain.StatusError, Message: label + " not found"}
	default:
		return domain.DeleteResult{Status: domain.StatusError, Message: fmt.Sprintf("Failed to delete %s: %v", strings.ToLower(label), err)}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
