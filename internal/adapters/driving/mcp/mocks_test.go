package mcp

import (
	"context"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// mockResourceService is a mock implementation of driving.ResourceService.
type mockResourceService struct {
	cfg         domain.Config
	collections []domain.Collection
	engines     []domain.Engine
	dataStores  []domain.DataStore
	documents   []domain.Document
	inventory   *domain.Inventory
	engine      *domain.Engine
	engineCfg   *domain.EngineConfig
	dataStore   *domain.DataStore
	apiEnabled  bool
	err         error

	// lastName and lastBranch record the arguments of the last lookup.
	lastName   string
	lastBranch string
}

func newMockResourceService() *mockResourceService {
	return &mockResourceService{
		cfg: domain.Config{
			ProjectID: "test-project",
			Location:  "global",
			Format:    domain.OutputTable,
		},
		apiEnabled: true,
	}
}

func (m *mockResourceService) ListCollections(_ context.Context) ([]domain.Collection, error) {
	return m.collections, m.err
}

func (m *mockResourceService) ListEngines(_ context.Context, _ string) ([]domain.Engine, error) {
	return m.engines, m.err
}

func (m *mockResourceService) ListDataStores(_ context.Context) ([]domain.DataStore, error) {
	return m.dataStores, m.err
}

func (m *mockResourceService) ListAll(_ context.Context) (*domain.Inventory, error) {
	return m.inventory, m.err
}

func (m *mockResourceService) DescribeEngine(_ context.Context, name string) (*domain.Engine, error) {
	m.lastName = name
	return m.engine, m.err
}

func (m *mockResourceService) EngineFullConfig(_ context.Context, name string) (*domain.EngineConfig, error) {
	m.lastName = name
	return m.engineCfg, m.err
}

func (m *mockResourceService) DescribeDataStore(_ context.Context, name string) (*domain.DataStore, error) {
	m.lastName = name
	return m.dataStore, m.err
}

func (m *mockResourceService) ListDocuments(_ context.Context, name, branch string) ([]domain.Document, error) {
	m.lastName = name
	m.lastBranch = branch
	return m.documents, m.err
}

func (m *mockResourceService) CreateEngine(_ context.Context, _ domain.EngineSpec) (*domain.EngineCreateResult, error) {
	return nil, m.err
}

func (m *mockResourceService) CreateDataStoreFromSource(_ context.Context, _ domain.ImportSpec) (*domain.ImportResult, error) {
	return nil, m.err
}

func (m *mockResourceService) DeleteEngine(_ context.Context, _ string) domain.DeleteResult {
	return domain.DeleteResult{}
}

func (m *mockResourceService) DeleteDataStore(_ context.Context, _ string) domain.DeleteResult {
	return domain.DeleteResult{}
}

func (m *mockResourceService) APIEnabled() bool {
	return m.apiEnabled
}

func (m *mockResourceService) Principal() string {
	return ""
}

func (m *mockResourceService) Config() domain.Config {
	return m.cfg
}
