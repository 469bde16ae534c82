package services

import (
	"context"
	"time"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
)

// Environment variables consulted by LoadConfig, in precedence order.
var (
	ProjectEnvVars  = []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"}
	LocationEnvVars = []string{"AGENTSPACE_LOCATION", "GCLOUD_LOCATION"}
)

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(key string) string

// ConfigOverrides carries values set explicitly on the command line.
// Empty strings mean "not set".
type ConfigOverrides struct {
	ProjectID         string
	Location          string
	Collection        string
	Format            string
	UseServiceAccount bool
	Verbose           bool
	OperationTimeout  time.Duration
}

// LoadConfig resolves the configuration of one invocation.
//
// Precedence:
//   - project:    flag > GOOGLE_CLOUD_PROJECT > GCLOUD_PROJECT > source
//   - location:   flag > AGENTSPACE_LOCATION > GCLOUD_LOCATION > source > "us"
//   - collection: flag > source > default_collection
//   - format:     flag > source > table
//
// source is consulted lazily and may be nil. The result is not validated;
// call Config.Validate before using it.
func LoadConfig(ctx context.Context, flags ConfigOverrides, env Env, source driven.ConfigSource) domain.Config {
	if env == nil {
		env = func(string) string { return "" }
	}

	cfg := domain.Config{
		ProjectID:         firstNonEmpty(flags.ProjectID, fromEnv(env, ProjectEnvVars)),
		Location:          firstNonEmpty(flags.Location, fromEnv(env, LocationEnvVars)),
		Collection:        flags.Collection,
		Format:            domain.OutputFormat(flags.Format),
		UseServiceAccount: flags.UseServiceAccount,
		Verbose:           flags.Verbose,
		OperationTimeout:  flags.OperationTimeout,
	}

	if cfg.ProjectID == "" {
		cfg.ProjectID = lookup(ctx, source, driven.ConfigKeyProject)
	}
	if cfg.Location == "" {
		cfg.Location = firstNonEmpty(lookup(ctx, source, driven.ConfigKeyLocation), domain.DefaultLocation)
	}
	if cfg.Collection == "" {
		cfg.Collection = firstNonEmpty(lookup(ctx, source, driven.ConfigKeyCollection), domain.DefaultCollection)
	}
	if cfg.Format == "" {
		cfg.Format = domain.OutputFormat(firstNonEmpty(lookup(ctx, source, driven.ConfigKeyFormat), string(domain.OutputTable)))
	}

	return cfg
}

// ConfigSources chains sources; the first one holding a key wins.
type ConfigSources []driven.ConfigSource

// Lookup implements driven.ConfigSource.
func (s ConfigSources) Lookup(ctx context.Context, key string) (string, bool) {
	for _, src := range s {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(ctx, key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func lookup(ctx context.Context, source driven.ConfigSource, key string) string {
	if source == nil {
		return ""
	}
	v, _ := source.Lookup(ctx, key)
	return v
}

func fromEnv(env Env, keys []string) string {
	for _, k := range keys {
		if v := env(k); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
