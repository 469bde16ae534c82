package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gemctl/internal/adapters/driven/auth"
	"github.com/custodia-labs/gemctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gemctl/internal/adapters/driven/discoveryengine"
	"github.com/custodia-labs/gemctl/internal/adapters/driven/gcloud"
	"github.com/custodia-labs/gemctl/internal/adapters/driving/styles"
	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/core/ports/driving"
	"github.com/custodia-labs/gemctl/internal/core/services"
	"github.com/custodia-labs/gemctl/internal/logger"
)

// annotationNoService marks commands that run without a resource service.
const annotationNoService = "gemctl/no-service"

// Global flags.
var (
	flagProjectID         string
	flagLocation          string
	flagCollection        string
	flagFormat            string
	flagUseServiceAccount bool
	flagVerbose           bool
	flagTimeout           time.Duration
)

var (
	// resourceService is built before any command that talks to the API runs.
	resourceService driving.ResourceService

	// newResourceService builds the service for a resolved config.
	newResourceService = buildResourceService

	// openConfigStore opens the defaults file.
	openConfigStore = func() (*file.ConfigStore, error) {
		return file.NewConfigStore("")
	}

	// gcloudCLI answers token and project lookups through the gcloud binary.
	gcloudCLI = gcloud.New(nil)

	// environ reads environment variables.
	environ services.Env = os.Getenv

	theme = styles.DefaultStyles()
)

var rootCmd = &cobra.Command{
	Use:   "gemctl",
	Short: "Manage Agentspace engines and data stores",
	Long: `gemctl manages Gemini Enterprise (Agentspace) resources through the
Discovery Engine API: search engines, data stores, collections and documents.

Credentials come from the gcloud CLI by default, or from Application Default
Credentials with --use-service-account.

The project is resolved from --project-id, then GOOGLE_CLOUD_PROJECT or
GCLOUD_PROJECT, then ~/.gemctl/config.toml, then the gcloud configuration.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagProjectID, "project-id", "", "Google Cloud project ID")
	flags.StringVar(&flagLocation, "location", "", "Location: global, us or eu (default \"us\")")
	flags.StringVar(&flagCollection, "collection", "", "Collection ID (default \"default_collection\")")
	flags.StringVar(&flagFormat, "format", "", "Output format: table, json or yaml (default \"table\")")
	flags.BoolVar(&flagUseServiceAccount, "use-service-account", false, "Authenticate with Application Default Credentials")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	flags.DurationVar(&flagTimeout, "timeout", services.DefaultMaxWait, "Maximum time to wait for a create operation")
}

// Execute runs the root command and exits 1 on failure.
// SIGINT and SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// cmd.Print* defaults to stderr; results belong on stdout.
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// setupServices resolves the configuration and builds the resource service.
func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	if !needsService(cmd) {
		return nil
	}

	cfg, err := resolveConfig(cmd.Context())
	if err != nil {
		return err
	}

	logger.Section("Configuration")
	logger.Info("project %s, location %s, collection %s", cfg.ProjectID, cfg.Location, cfg.CollectionOrDefault())

	svc, err := newResourceService(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	resourceService = svc
	return nil
}

// resolveConfig applies flags, environment and stored defaults.
func resolveConfig(ctx context.Context) (domain.Config, error) {
	store, err := openConfigStore()
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to open config: %w", err)
	}

	sources := services.ConfigSources{store, gcloudCLI}
	if flagUseServiceAccount {
		sources = append(sources, adcSource{})
	}

	cfg := services.LoadConfig(ctx, services.ConfigOverrides{
		ProjectID:         flagProjectID,
		Location:          flagLocation,
		Collection:        flagCollection,
		Format:            flagFormat,
		UseServiceAccount: flagUseServiceAccount,
		Verbose:           flagVerbose,
		OperationTimeout:  flagTimeout,
	}, environ, sources)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, domain.ErrProjectRequired) {
			return cfg, fmt.Errorf(`%w. Set via:
  1. --project-id flag
  2. GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT environment variable
  3. gemctl config set project PROJECT_ID
  4. gcloud config set project PROJECT_ID`, err)
		}
		return cfg, err
	}
	return cfg, nil
}

// buildResourceService wires credentials, transport, client and poller.
func buildResourceService(ctx context.Context, cfg domain.Config) (driving.ResourceService, error) {
	tokens, err := auth.NewTokenProvider(ctx, cfg.UseServiceAccount, gcloudCLI)
	if err != nil {
		return nil, err
	}

	httpClient := auth.NewHTTPClient(ctx, tokens, cfg.ProjectID, nil)
	baseURL := discoveryengine.ResolveBaseURL(cfg.Location)
	logger.Debug("endpoint %s", baseURL)
	client := discoveryengine.NewClient(baseURL, httpClient)

	poller := services.NewOperationPoller(client, nil)
	poller.SetProgress(func(_ string, attempt int) {
		logger.Progress("Waiting for operation to complete... (poll %d)", attempt)
	})

	svc := services.NewResourceService(cfg, client, poller, tokens)
	svc.SetMaxWait(cfg.OperationTimeout)
	return svc, nil
}

// needsService reports whether cmd talks to the resource service.
func needsService(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoService]; ok {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// adcSource reads the project from Application Default Credentials.
// Credentials are only discovered when the project is still unresolved.
type adcSource struct{}

func (adcSource) Lookup(ctx context.Context, key string) (string, bool) {
	if key != driven.ConfigKeyProject {
		return "", false
	}
	provider, err := auth.NewADCTokenProvider(ctx)
	if err != nil {
		logger.Debug("no project from application default credentials: %v", err)
		return "", false
	}
	return provider.Lookup(ctx, key)
}

// currentConfig returns the configuration of the running command.
func currentConfig() domain.Config {
	if resourceService == nil {
		return domain.Config{Format: domain.OutputTable}
	}
	return resourceService.Config()
}
