package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportSpec_Validate(t *testing.T) {
	valid := ImportSpec{DataStoreID: "ds", DisplayName: "DS", SourceURI: "gs://b/*"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mod  func(*ImportSpec)
	}{
		{"no id", func(s *ImportSpec) { s.DataStoreID = "" }},
		{"no display name", func(s *ImportSpec) { s.DisplayName = "" }},
		{"no source", func(s *ImportSpec) { s.SourceURI = "" }},
		{"bad schema", func(s *ImportSpec) { s.DataSchema = "xml" }},
		{"bad mode", func(s *ImportSpec) { s.ReconciliationMode = "PARTIAL" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mod(&spec)
			assert.ErrorIs(t, spec.Validate(), ErrInvalidInput)
		})
	}
}

func TestImportSpec_ImportRequest(t *testing.T) {
	req := ImportSpec{DataStoreID: "ds", DisplayName: "DS", SourceURI: "gs://b/a.pdf"}.ImportRequest()

	require.NotNil(t, req.GCSSource)
	assert.Equal(t, []string{"gs://b/a.pdf"}, req.GCSSource.InputURIs)
	assert.Equal(t, "content", req.GCSSource.DataSchema)
	assert.Equal(t, "INCREMENTAL", req.ReconciliationMode)

	body, err := json.Marshal(ImportSpec{
		SourceURI:          "gs://b/x.csv",
		DataSchema:         DataSchemaCSV,
		ReconciliationMode: ReconciliationFull,
	}.ImportRequest())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"gcsSource":{"inputUris":["gs://b/x.csv"],"dataSchema":"csv"},"reconciliationMode":"FULL"}`,
		string(body))
}

func TestNewSearchDataStore(t *testing.T) {
	ds := NewSearchDataStore("Docs")

	assert.Equal(t, "Docs", ds.DisplayName)
	assert.Equal(t, IndustryVerticalGeneric, ds.IndustryVertical)
	assert.Equal(t, []string{SolutionTypeSearch}, ds.SolutionTypes)
	assert.Equal(t, ContentRequired, ds.ContentConfig)
	assert.Empty(t, ds.Name)
}

func TestBillingEstimation_SizeMB(t *testing.T) {
	assert.InDelta(t, 2.0, (&BillingEstimation{UnstructuredDataSize: "2097152"}).SizeMB(), 0.0001)
	assert.Zero(t, (&BillingEstimation{}).SizeMB())
	assert.Zero(t, (&BillingEstimation{UnstructuredDataSize: "lots"}).SizeMB())
}
