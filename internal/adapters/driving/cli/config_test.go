package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := subcommandNames(configCmd)

	assert.ElementsMatch(t, []string{"get", "set", "unset", "list", "path"}, names)
}

func TestConfigCmd_RunsWithoutProject(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	builds := 0
	newResourceService = countingFactory(&builds)

	_, _, err := runCLI("config", "path")

	require.NoError(t, err)
	assert.Zero(t, builds)
}

func TestConfigSetGet(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := runCLI("config", "set", "project", "my-project")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set project = my-project")

	stdout, _, err = runCLI("config", "get", "project")
	require.NoError(t, err)
	assert.Equal(t, "my-project\n", stdout)
}

func TestConfigGet_Unset(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, _, err := runCLI("config", "get", "location")

	require.Error(t, err)
	assert.Equal(t, "location is not set", err.Error())
}

func TestConfigSet_Invalid(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown key", args: []string{"config", "set", "colour", "blue"}},
		{name: "bad format", args: []string{"config", "set", "format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(tt.args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestConfigUnset(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, _, err := runCLI("config", "set", "collection", "coll-1")
	require.NoError(t, err)

	stdout, _, err := runCLI("config", "unset", "collection")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Unset collection")

	_, _, err = runCLI("config", "get", "collection")
	assert.Error(t, err)
}

func TestConfigList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()

		stdout, _, err := runCLI("config", "list")

		require.NoError(t, err)
		assert.Contains(t, stdout, "No values stored in")
	})

	t.Run("table", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		_, _, err := runCLI("config", "set", "project", "p1")
		require.NoError(t, err)
		_, _, err = runCLI("config", "set", "location", "eu")
		require.NoError(t, err)

		stdout, _, err := runCLI("config", "list")

		require.NoError(t, err)
		assert.Contains(t, stdout, "KEY")
		assert.Contains(t, stdout, "p1")
		assert.Contains(t, stdout, "eu")
	})

	t.Run("stored format applies", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		_, _, err := runCLI("config", "set", "format", "json")
		require.NoError(t, err)

		stdout, _, err := runCLI("config", "list")

		require.NoError(t, err)
		assert.Contains(t, stdout, `"format": "json"`)
	})

	t.Run("flag wins", func(t *testing.T) {
		cleanup := setupTestServices(t)
		defer cleanup()
		_, _, err := runCLI("config", "set", "project", "p1")
		require.NoError(t, err)

		stdout, _, err := runCLI("--format", "yaml", "config", "list")

		require.NoError(t, err)
		assert.Contains(t, stdout, "project: p1")
	})
}

func TestConfigPath(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := runCLI("config", "path")

	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(lines(stdout)[0]))
}
