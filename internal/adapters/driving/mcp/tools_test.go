package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

const enginePrefix = "projects/test-project/locations/global/collections/default_collection/engines/"

func newTestServer(t *testing.T, svc *mockResourceService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Resources: svc})
	require.NoError(t, err)
	return server
}

func TestServer_handleListEngines(t *testing.T) {
	ctx := context.Background()

	t.Run("returns engine summaries", func(t *testing.T) {
		svc := newMockResourceService()
		svc.engines = []domain.Engine{
			{Name: enginePrefix + "eng-1", DisplayName: "Engine One", SolutionType: domain.SolutionTypeSearch},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleListEngines(ctx, nil, EmptyInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Items, 1)
		assert.Equal(t, "eng-1", output.Items[0].ID)
		assert.Equal(t, "Engine One", output.Items[0].DisplayName)
		assert.Equal(t, domain.SolutionTypeSearch, output.Items[0].Type)
		assert.Empty(t, output.Warning)
	})

	t.Run("disabled API is a warning", func(t *testing.T) {
		svc := newMockResourceService()
		svc.engines = []domain.Engine{}
		svc.err = fmt.Errorf("list: %w", domain.ErrAPIDisabled)
		server := newTestServer(t, svc)

		_, output, err := server.handleListEngines(ctx, nil, EmptyInput{})

		require.NoError(t, err)
		assert.Zero(t, output.Count)
		assert.Contains(t, output.Warning, "not enabled")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		svc := newMockResourceService()
		svc.err = fmt.Errorf("list: %w", domain.ErrTransport)
		server := newTestServer(t, svc)

		_, _, err := server.handleListEngines(ctx, nil, EmptyInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing engines")
		assert.ErrorIs(t, err, domain.ErrTransport)
	})
}

func TestServer_handleListCollectionsAndDataStores(t *testing.T) {
	ctx := context.Background()
	svc := newMockResourceService()
	svc.collections = []domain.Collection{
		{Name: "projects/test-project/locations/global/collections/default_collection", DisplayName: "Default"},
	}
	svc.dataStores = []domain.DataStore{
		{Name: "projects/test-project/locations/global/collections/default_collection/dataStores/ds-1", ContentConfig: domain.ContentRequired},
		{Name: "projects/test-project/locations/global/collections/default_collection/dataStores/ds-2"},
	}
	server := newTestServer(t, svc)

	_, collections, err := server.handleListCollections(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Len(t, collections.Items, 1)
	assert.Equal(t, domain.DefaultCollection, collections.Items[0].ID)

	_, dataStores, err := server.handleListDataStores(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, dataStores.Count)
	assert.Equal(t, "ds-1", dataStores.Items[0].ID)
	assert.Equal(t, domain.ContentRequired, dataStores.Items[0].Type)
}

func TestServer_handleListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("partial inventory carries the warning", func(t *testing.T) {
		svc := newMockResourceService()
		svc.inventory = &domain.Inventory{
			Collections: []domain.Collection{},
			Engines:     []domain.Engine{{Name: enginePrefix + "eng-1"}},
			DataStores:  []domain.DataStore{},
		}
		svc.err = errors.New("list data stores: boom")
		server := newTestServer(t, svc)

		_, output, err := server.handleListAll(ctx, nil, EmptyInput{})

		require.NoError(t, err)
		assert.Len(t, output.Engines, 1)
		assert.Empty(t, output.Collections)
		assert.Contains(t, output.Warning, "boom")
	})

	t.Run("nil inventory with error fails", func(t *testing.T) {
		svc := newMockResourceService()
		svc.err = errors.New("boom")
		server := newTestServer(t, svc)

		_, _, err := server.handleListAll(ctx, nil, EmptyInput{})

		require.Error(t, err)
	})
}

func TestServer_handleDescribeEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("expands bare IDs", func(t *testing.T) {
		svc := newMockResourceService()
		svc.engine = &domain.Engine{Name: enginePrefix + "eng-1", DisplayName: "Engine One"}
		server := newTestServer(t, svc)

		_, output, err := server.handleDescribeEngine(ctx, nil, EngineInput{Engine: "eng-1"})

		require.NoError(t, err)
		assert.Equal(t, enginePrefix+"eng-1", svc.lastName)
		assert.Equal(t, "Engine One", output.Engine.DisplayName)
		assert.Empty(t, output.DataStores)
	})

	t.Run("full config includes data stores", func(t *testing.T) {
		svc := newMockResourceService()
		svc.engineCfg = &domain.EngineConfig{
			Engine:     &domain.Engine{Name: enginePrefix + "eng-1"},
			DataStores: []domain.DataStore{{Name: "ds"}},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleDescribeEngine(ctx, nil, EngineInput{Engine: "eng-1", Full: true})

		require.NoError(t, err)
		assert.Len(t, output.DataStores, 1)
	})

	t.Run("missing engine argument", func(t *testing.T) {
		server := newTestServer(t, newMockResourceService())

		_, _, err := server.handleDescribeEngine(ctx, nil, EngineInput{})

		require.Error(t, err)
	})

	t.Run("not found is reported", func(t *testing.T) {
		svc := newMockResourceService()
		svc.err = domain.ErrNotFound
		server := newTestServer(t, svc)

		_, _, err := server.handleDescribeEngine(ctx, nil, EngineInput{Engine: "missing"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleDescribeDataStore(t *testing.T) {
	ctx := context.Background()
	full := "projects/p/locations/eu/collections/c/dataStores/ds-9"
	svc := newMockResourceService()
	svc.dataStore = &domain.DataStore{Name: full, Schema: &domain.Schema{Name: full + "/schemas/default_schema"}}
	server := newTestServer(t, svc)

	_, output, err := server.handleDescribeDataStore(ctx, nil, DataStoreInput{DataStore: full})

	require.NoError(t, err)
	assert.Equal(t, full, svc.lastName)
	require.NotNil(t, output.DataStore.Schema)

	_, _, err = server.handleDescribeDataStore(ctx, nil, DataStoreInput{})
	assert.Error(t, err)
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()
	svc := newMockResourceService()
	svc.documents = []domain.Document{
		{ID: "doc-1", Content: &domain.DocumentContent{URI: "gs://bucket/a.pdf"}, IndexTime: "2025-01-01T00:00:00Z"},
		{ID: "doc-2"},
	}
	server := newTestServer(t, svc)

	_, output, err := server.handleListDocuments(ctx, nil, DocumentsInput{DataStore: "ds-1", Branch: "b1"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "gs://bucket/a.pdf", output.Documents[0].URI)
	assert.Empty(t, output.Documents[1].URI)
	assert.Equal(t, "b1", svc.lastBranch)
	assert.Equal(t, "projects/test-project/locations/global/collections/default_collection/dataStores/ds-1", svc.lastName)
}
