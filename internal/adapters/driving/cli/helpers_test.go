package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/gemctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gemctl/internal/adapters/driven/gcloud"
	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driving"
)

// testService is the mock handed to commands by setupTestServices.
var testService *mockResourceService

// mockResourceService is a mock implementation of driving.ResourceService.
type mockResourceService struct {
	cfg          domain.Config
	collections  []domain.Collection
	engines      []domain.Engine
	dataStores   []domain.DataStore
	documents    []domain.Document
	inventory    *domain.Inventory
	engine       *domain.Engine
	engineCfg    *domain.EngineConfig
	dataStore    *domain.DataStore
	createResult *domain.EngineCreateResult
	importResult *domain.ImportResult
	deleteResult domain.DeleteResult
	principal    string
	err          error

	// Recorded calls.
	lastName    string
	lastBranch  string
	engineSpec  domain.EngineSpec
	importSpec  domain.ImportSpec
	deleteCalls int
}

func newMockResourceService() *mockResourceService {
	return &mockResourceService{
		deleteResult: domain.DeleteResult{Status: domain.StatusSuccess, Message: "Engine deleted successfully"},
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

func (m *mockResourceService) CreateEngine(_ context.Context, spec domain.EngineSpec) (*domain.EngineCreateResult, error) {
	m.engineSpec = spec
	return m.createResult, m.err
}

func (m *mockResourceService) CreateDataStoreFromSource(_ context.Context, spec domain.ImportSpec) (*domain.ImportResult, error) {
	m.importSpec = spec
	return m.importResult, m.err
}

func (m *mockResourceService) DeleteEngine(_ context.Context, name string) domain.DeleteResult {
	m.lastName = name
	m.deleteCalls++
	return m.deleteResult
}

func (m *mockResourceService) DeleteDataStore(_ context.Context, name string) domain.DeleteResult {
	m.lastName = name
	m.deleteCalls++
	return m.deleteResult
}

func (m *mockResourceService) APIEnabled() bool {
	return !errors.Is(m.err, domain.ErrAPIDisabled)
}

func (m *mockResourceService) Principal() string {
	return m.principal
}

func (m *mockResourceService) Config() domain.Config {
	return m.cfg
}

// noGcloud fails every gcloud invocation.
type noGcloud struct{}

func (noGcloud) Run(_ context.Context, name string, _ ...string) (string, error) {
	return "", errors.New(name + ": executable file not found in $PATH")
}

// setupTestServices points every collaborator of the root command at test
// doubles and returns a cleanup function restoring them.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	origFactory := newResourceService
	origStore := openConfigStore
	origGcloud := gcloudCLI
	origEnv := environ
	origTTY := stdinIsTerminal
	origService := resourceService

	dir := t.TempDir()
	openConfigStore = func() (*file.ConfigStore, error) {
		return file.NewConfigStore(dir)
	}
	gcloudCLI = gcloud.New(noGcloud{})
	environ = func(string) string { return "" }
	stdinIsTerminal = func() bool { return false }

	testService = newMockResourceService()
	newResourceService = func(_ context.Context, cfg domain.Config) (driving.ResourceService, error) {
		testService.cfg = cfg
		return testService, nil
	}
	resourceService = nil
	resetFlags(rootCmd)

	return func() {
		newResourceService = origFactory
		openConfigStore = origStore
		gcloudCLI = origGcloud
		environ = origEnv
		stdinIsTerminal = origTTY
		resourceService = origService
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// countingFactory returns a service factory that counts its calls.
func countingFactory(builds *int) func(context.Context, domain.Config) (driving.ResourceService, error) {
	return func(_ context.Context, cfg domain.Config) (driving.ResourceService, error) {
		*builds++
		svc := newMockResourceService()
		svc.cfg = cfg
		return svc, nil
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// withProject prepends the global flags every API command needs.
func withProject(args ...string) []string {
	return append([]string{"--project-id", "test-project", "--location", "global"}, args...)
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
