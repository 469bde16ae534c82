package domain

import (
	"fmt"
	"time"
)

// DefaultLocation is used when no location is configured.
const DefaultLocation = "us"

// OutputFormat selects how command results are rendered.
type OutputFormat string

// Available output formats.
const (
	// OutputTable renders human-readable tables.
	OutputTable OutputFormat = "table"

	// OutputJSON renders indented JSON.
	OutputJSON OutputFormat = "json"

	// OutputYAML renders YAML.
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown output format %q (want table, json or yaml)", ErrInvalidInput, s)
	}
	return f, nil
}

// Config holds the resolved settings for one CLI invocation.
// It is built once at start-up and passed to every component.
type Config struct {
	// ProjectID is the Google Cloud project owning the resources.
	ProjectID string

	// Location is "global" or a multi-region such as "us" or "eu".
	Location string

	// Collection is the collection ID used to expand bare resource IDs.
	Collection string

	// UseServiceAccount selects Application Default Credentials over gcloud user tokens.
	UseServiceAccount bool

	// Format selects the output renderer.
	Format OutputFormat

	// Verbose enables debug logging.
	Verbose bool

	// OperationTimeout bounds how long create commands poll their operation.
	// Zero means the poller's default.
	OperationTimeout time.Duration
}

// CollectionOrDefault returns the configured collection or default_collection.
func (c Config) CollectionOrDefault() string {
	if c.Collection == "" {
		return DefaultCollection
	}
	return c.Collection
}

// Validate checks the config before any command touches the resource service.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return ErrProjectRequired
	}
	if c.Location == "" {
		return fmt.Errorf("%w: location is empty", ErrInvalidInput)
	}
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, c.Format)
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	return nil
}
