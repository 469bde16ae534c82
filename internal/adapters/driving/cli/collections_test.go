package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

func TestCollectionsList(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	testService.collections = []domain.Collection{
		{Name: "projects/test-project/locations/global/collections/default_collection", DisplayName: "Default", CreateTime: "2025-01-01T00:00:00Z"},
	}

	stdout, _, err := runCLI(withProject("collections", "list")...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "default_collection")
	assert.Contains(t, stdout, "Default")
	assert.Contains(t, stdout, "2025-01-01T00:00:00Z")
	assert.Contains(t, stdout, "Total: 1 collection(s)")
}

func TestCollectionsList_Empty(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := runCLI(withProject("collections", "list")...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No collections found.")
}

func TestListAll(t *testing.T) {
	t.Run("sections and total", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{
			Collections: []domain.Collection{{Name: "projects/p/locations/global/collections/default_collection"}},
			Engines:     []domain.Engine{{Name: testEnginePrefix + "eng-1"}, {Name: testEnginePrefix + "eng-2"}},
			DataStores:  []domain.DataStore{},
		}

		stdout, _, err := runCLI(withProject("list")...)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Collections")
		assert.Contains(t, stdout, "Engines")
		assert.Contains(t, stdout, "eng-2")
		assert.Contains(t, stdout, "No data stores found.")
		assert.Contains(t, stdout, "Total: 1 collection(s), 2 engine(s), 0 data store(s)")
	})

	t.Run("partial inventory warns", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{
			Collections: []domain.Collection{},
			Engines:     []domain.Engine{{Name: testEnginePrefix + "eng-1"}},
			DataStores:  []domain.DataStore{},
		}
		testService.err = fmt.Errorf("list data stores: %w: boom", domain.ErrTransport)

		stdout, stderr, err := runCLI(withProject("list")...)

		require.NoError(t, err)
		assert.Contains(t, stderr, "Warning: list data stores:")
		assert.Contains(t, stderr, "boom")
		assert.Contains(t, stdout, "eng-1")
	})

	t.Run("auth failure aborts", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{
			Collections: []domain.Collection{},
			Engines:     []domain.Engine{},
			DataStores:  []domain.DataStore{},
		}
		testService.err = fmt.Errorf("list collections: %w: gcloud exited with status 1", domain.ErrAuth)

		stdout, _, err := runCLI(withProject("list")...)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAuth)
		assert.NotContains(t, stdout, "No collections found.")
		assert.NotContains(t, stdout, "Total:")
	})

	t.Run("unclassified error aborts", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{}
		testService.err = errors.New("boom")

		_, _, err := runCLI(withProject("list")...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list resources: boom")
	})

	t.Run("disabled API", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{}
		testService.err = fmt.Errorf("list collections: %w", domain.ErrAPIDisabled)

		stdout, stderr, err := runCLI(withProject("list")...)

		require.NoError(t, err)
		assert.Contains(t, stderr, "Discovery Engine API is not enabled")
		assert.Contains(t, stdout, "No engines found.")
	})

	t.Run("no inventory fails", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.err = errors.New("boom")

		_, _, err := runCLI(withProject("list")...)

		require.Error(t, err)
	})

	t.Run("JSON", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		testService.inventory = &domain.Inventory{
			Collections: []domain.Collection{},
			Engines:     []domain.Engine{},
			DataStores:  []domain.DataStore{},
		}

		stdout, _, err := runCLI(withProject("--format", "json", "list")...)

		require.NoError(t, err)
		assert.Contains(t, stdout, `"collections": []`)
		assert.Contains(t, stdout, `"engines": []`)
		assert.Contains(t, stdout, `"data_stores": []`)
	})
}

func TestPluralCount(t *testing.T) {
	assert.Equal(t, "0 engine(s)", pluralCount(0, "engine"))
	assert.Equal(t, "3 data store(s)", pluralCount(3, "data store"))
}
