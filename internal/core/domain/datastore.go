package domain

import (
	"fmt"
	"strconv"
)

// BillingEstimation reports the data volume a data store is billed for.
type BillingEstimation struct {
	// UnstructuredDataSize is an int64 encoded as a decimal string on the wire.
	UnstructuredDataSize       string `json:"unstructuredDataSize,omitempty" yaml:"unstructuredDataSize,omitempty"`
	UnstructuredDataUpdateTime string `json:"unstructuredDataUpdateTime,omitempty" yaml:"unstructuredDataUpdateTime,omitempty"`
}

// SizeMB returns the unstructured data size in mebibytes.
func (b *BillingEstimation) SizeMB() float64 {
	size, err := strconv.ParseInt(b.UnstructuredDataSize, 10, 64)
	if err != nil {
		return 0
	}
	return float64(size) / (1024 * 1024)
}

// LayoutBasedChunkingConfig controls layout-aware chunking.
type LayoutBasedChunkingConfig struct {
	ChunkSize               int  `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty"`
	IncludeAncestorHeadings bool `json:"includeAncestorHeadings,omitempty" yaml:"includeAncestorHeadings,omitempty"`
}

// ChunkingConfig selects the chunking strategy.
type ChunkingConfig struct {
	LayoutBasedChunkingConfig *LayoutBasedChunkingConfig `json:"layoutBasedChunkingConfig,omitempty" yaml:"layoutBasedChunkingConfig,omitempty"`
}

// LayoutParsingConfig toggles layout parser annotations.
type LayoutParsingConfig struct {
	EnableTableAnnotation bool `json:"enableTableAnnotation,omitempty" yaml:"enableTableAnnotation,omitempty"`
	EnableImageAnnotation bool `json:"enableImageAnnotation,omitempty" yaml:"enableImageAnnotation,omitempty"`
}

// ParsingConfig selects the document parser.
type ParsingConfig struct {
	LayoutParsingConfig *LayoutParsingConfig `json:"layoutParsingConfig,omitempty" yaml:"layoutParsingConfig,omitempty"`
}

// DocumentProcessingConfig describes how imported documents are parsed and chunked.
type DocumentProcessingConfig struct {
	Name                 string          `json:"name,omitempty" yaml:"name,omitempty"`
	ChunkingConfig       *ChunkingConfig `json:"chunkingConfig,omitempty" yaml:"chunkingConfig,omitempty"`
	DefaultParsingConfig *ParsingConfig  `json:"defaultParsingConfig,omitempty" yaml:"defaultParsingConfig,omitempty"`
}

// Schema is the document schema of a data store.
type Schema struct {
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
	StructSchema map[string]any `json:"structSchema,omitempty" yaml:"structSchema,omitempty"`
	JSONSchema   string         `json:"jsonSchema,omitempty" yaml:"jsonSchema,omitempty"`
}

// DataStore holds documents that engines search over.
type DataStore struct {
	Name                     string                    `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName              string                    `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	IndustryVertical         string                    `json:"industryVertical,omitempty" yaml:"industryVertical,omitempty"`
	ContentConfig            string                    `json:"contentConfig,omitempty" yaml:"contentConfig,omitempty"`
	SolutionTypes            []string                  `json:"solutionTypes,omitempty" yaml:"solutionTypes,omitempty"`
	ACLEnabled               bool                      `json:"aclEnabled,omitempty" yaml:"aclEnabled,omitempty"`
	BillingEstimation        *BillingEstimation        `json:"billingEstimation,omitempty" yaml:"billingEstimation,omitempty"`
	DocumentProcessingConfig *DocumentProcessingConfig `json:"documentProcessingConfig,omitempty" yaml:"documentProcessingConfig,omitempty"`
	CreateTime               string                    `json:"createTime,omitempty" yaml:"createTime,omitempty"`
	Schema                   *Schema                   `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// NewSearchDataStore returns the create-request body used for imports:
// generic vertical, search solution, content required.
func NewSearchDataStore(displayName string) DataStore {
	return DataStore{
		DisplayName:      displayName,
		IndustryVertical: IndustryVerticalGeneric,
		SolutionTypes:    []string{SolutionTypeSearch},
		ContentConfig:    ContentRequired,
	}
}

// DataSchema names the layout of imported source files.
type DataSchema string

// Available data schemas.
const (
	DataSchemaContent  DataSchema = "content"
	DataSchemaCustom   DataSchema = "custom"
	DataSchemaCSV      DataSchema = "csv"
	DataSchemaDocument DataSchema = "document"
)

// IsValid returns true if the data schema is recognised.
func (s DataSchema) IsValid() bool {
	switch s {
	case DataSchemaContent, DataSchemaCustom, DataSchemaCSV, DataSchemaDocument:
		return true
	default:
		return false
	}
}

// ReconciliationMode selects whether an import merges into or replaces existing documents.
type ReconciliationMode string

// Available reconciliation modes.
const (
	ReconciliationIncremental ReconciliationMode = "INCREMENTAL"
	ReconciliationFull        ReconciliationMode = "FULL"
)

// IsValid returns true if the reconciliation mode is recognised.
func (m ReconciliationMode) IsValid() bool {
	return m == ReconciliationIncremental || m == ReconciliationFull
}

// ImportSpec describes a data store to create and the source to import into it.
type ImportSpec struct {
	DataStoreID        string
	DisplayName        string
	SourceURI          string
	DataSchema         DataSchema
	ReconciliationMode ReconciliationMode
}

// WithDefaults fills in the content schema and incremental mode when unset.
func (s ImportSpec) WithDefaults() ImportSpec {
	if s.DataSchema == "" {
		s.DataSchema = DataSchemaContent
	}
	if s.ReconciliationMode == "" {
		s.ReconciliationMode = ReconciliationIncremental
	}
	return s
}

// Validate checks the fields before any request is sent.
func (s ImportSpec) Validate() error {
	if s.DataStoreID == "" {
		return fmt.Errorf("%w: data store ID is required", ErrInvalidInput)
	}
	if s.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if s.SourceURI == "" {
		return fmt.Errorf("%w: source URI is required", ErrInvalidInput)
	}
	if s.DataSchema != "" && !s.DataSchema.IsValid() {
		return fmt.Errorf("%w: unknown data schema %q", ErrInvalidInput, s.DataSchema)
	}
	if s.ReconciliationMode != "" && !s.ReconciliationMode.IsValid() {
		return fmt.Errorf("%w: unknown reconciliation mode %q", ErrInvalidInput, s.ReconciliationMode)
	}
	return nil
}

// GCSSource is the Cloud Storage source of an import request.
type GCSSource struct {
	InputURIs  []string `json:"inputUris"`
	DataSchema string   `json:"dataSchema,omitempty"`
}

// ImportRequest is the body of a documents:import call.
type ImportRequest struct {
	GCSSource          *GCSSource `json:"gcsSource"`
	ReconciliationMode string     `json:"reconciliationMode,omitempty"`
}

// ImportRequest builds the documents:import body.
func (s ImportSpec) ImportRequest() ImportRequest {
	s = s.WithDefaults()
	return ImportRequest{
		GCSSource: &GCSSource{
			InputURIs:  []string{s.SourceURI},
			DataSchema: string(s.DataSchema),
		},
		ReconciliationMode: string(s.ReconciliationMode),
	}
}

// ImportResult reports the outcome of a create-and-import workflow.
// The import operation is returned outstanding.
type ImportResult struct {
	DataStoreName   string     `json:"data_store_name" yaml:"data_store_name"`
	ImportOperation *Operation `json:"import_operation" yaml:"import_operation"`
	Status          string     `json:"status" yaml:"status"`
}
