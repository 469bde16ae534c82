package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourcePath_RoundTrip(t *testing.T) {
	names := []string{
		"projects/p1/locations/us",
		"projects/p1/locations/us/collections/default_collection",
		"projects/p1/locations/us/collections/default_collection/dataStores/ds1",
		"projects/p1/locations/global/collections/c/engines/e/servingConfigs/default_search",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path, err := ParseResourcePath(name)
			require.NoError(t, err)
			assert.Equal(t, name, path.String())
		})
	}
}

func TestParseResourcePath_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"odd segments", "projects/p1/locations"},
		{"empty value", "projects//locations/us"},
		{"trailing slash", "projects/p1/"},
		{"leading slash", "/projects/p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResourcePath(tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestResourcePath_Value(t *testing.T) {
	path, err := ParseResourcePath("projects/p1/locations/eu/collections/c1/dataStores/ds1")
	require.NoError(t, err)

	for segment, want := range map[string]string{
		SegmentProjects:         "p1",
		SegmentLocations:        "eu",
		SegmentCollections:      "c1",
		KindDataStores.String(): "ds1",
	} {
		got, err := path.Value(segment)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = path.Value(KindEngines.String())
	assert.ErrorIs(t, err, ErrSegmentNotFound)

	assert.Equal(t, "ds1", path.ID())
}

func TestResourcePath_ChildDoesNotAlias(t *testing.T) {
	base := CollectionPath("p", "us", "c")
	a := base.Child("engines", "a")
	b := base.Child("engines", "b")

	assert.Equal(t, "projects/p/locations/us/collections/c/engines/a", a.String())
	assert.Equal(t, "projects/p/locations/us/collections/c/engines/b", b.String())
	assert.Equal(t, "projects/p/locations/us/collections/c", base.String())
}

func TestResourcePath_Zero(t *testing.T) {
	var p ResourcePath
	assert.Empty(t, p.ID())
	assert.Empty(t, p.String())
}

func TestResourceName(t *testing.T) {
	assert.Equal(t,
		"projects/p1/locations/us/collections/default_collection/dataStores/ds1",
		ResourceName("p1", "us", DefaultCollection, KindDataStores, "ds1"))
	assert.Equal(t,
		"projects/p1/locations/global/collections/c/engines/e1",
		ResourceName("p1", "global", "c", KindEngines, "e1"))
}

func TestResolveName(t *testing.T) {
	cfg := Config{ProjectID: "p1", Location: "us"}

	assert.Equal(t,
		"projects/p1/locations/us/collections/default_collection/engines/e1",
		ResolveName("e1", cfg, KindEngines))

	full := "projects/x/locations/eu/collections/c/dataStores/d"
	assert.Equal(t, full, ResolveName(full, cfg, KindDataStores))

	cfg.Collection = "custom"
	assert.Equal(t,
		"projects/p1/locations/us/collections/custom/dataStores/d",
		ResolveName("d", cfg, KindDataStores))
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "ds1", ShortName("projects/p/locations/us/collections/c/dataStores/ds1"))
	assert.Equal(t, "plain", ShortName("plain"))
	assert.Empty(t, ShortName(""))
}

func TestBranchAndSchemaName(t *testing.T) {
	ds := "projects/p/locations/us/collections/c/dataStores/ds1"
	assert.Equal(t, ds+"/branches/default_branch", BranchName(ds, DefaultBranch))
	assert.Equal(t, ds+"/schemas/default_schema", SchemaName(ds))
}
