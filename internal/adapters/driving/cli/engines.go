package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

var enginesCmd = &cobra.Command{
	Use:     "engines",
	Aliases: []string{"engine"},
	Short:   "Manage search engines",
	Long:    `Commands for listing, inspecting, creating and deleting search engines (apps).`,
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List engines in the collection",
	Args:  cobra.NoArgs,
	RunE:  runEnginesList,
}

var enginesDescribeCmd = &cobra.Command{
	Use:   "describe [engine-id]",
	Short: "Describe an engine",
	Long: `Describe an engine. ENGINE_ID may be a bare ID or a full resource name.

With --full, every data store the engine serves is fetched as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnginesDescribe,
}

var enginesCreateCmd = &cobra.Command{
	Use:   "create [engine-id] [display-name] [data-store-id...]",
	Short: "Create a search engine connected to data stores",
	Long: `Create a search engine and wait for the operation to finish.

Examples:
  gemctl engines create my-engine "My Search Engine" datastore1 datastore2
  gemctl engines create my-engine "My Search Engine" datastore1 --search-tier SEARCH_TIER_ENTERPRISE`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEnginesCreate,
}

var enginesDeleteCmd = &cobra.Command{
	Use:   "delete [engine-id]",
	Short: "Delete an engine",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnginesDelete,
}

func init() {
	enginesDescribeCmd.Flags().Bool("full", false, "Include the configuration of every attached data store")

	enginesCreateCmd.Flags().String("search-tier", string(domain.SearchTierStandard),
		"Search tier: SEARCH_TIER_STANDARD or SEARCH_TIER_ENTERPRISE")
	enginesCreateCmd.Flags().String("company-name", "", "Company name shown by the assistant")

	enginesDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	enginesCmd.AddCommand(enginesListCmd)
	enginesCmd.AddCommand(enginesDescribeCmd)
	enginesCmd.AddCommand(enginesCreateCmd)
	enginesCmd.AddCommand(enginesDeleteCmd)
	rootCmd.AddCommand(enginesCmd)
}

func runEnginesList(cmd *cobra.Command, _ []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	cfg := currentConfig()
	reportTarget(cmd, cfg)

	engines, err := resourceService.ListEngines(cmd.Context(), "")
	if err := listWarning(cmd, "engines", err); err != nil {
		return err
	}

	return render(cmd, engines, func() {
		if len(engines) == 0 {
			cmd.Println("No engines found.")
			return
		}
		cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "TYPE"}, engineRows(engines)))
		printTotal(cmd, len(engines), "engine")
	})
}

func engineRows(engines []domain.Engine) [][]string {
	rows := make([][]string, 0, len(engines))
	for i := range engines {
		rows = append(rows, []string{
			orNA(domain.ShortName(engines[i].Name)),
			orNA(engines[i].DisplayName),
			orNA(strings.TrimPrefix(engines[i].SolutionType, "SOLUTION_TYPE_")),
		})
	}
	return rows
}

func runEnginesDescribe(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("getting full flag: %w", err)
	}

	engineID := args[0]
	name := domain.ResolveName(engineID, currentConfig(), domain.KindEngines)

	if full {
		note(cmd, "Fetching full configuration for: %s", engineID)
		cfg, err := resourceService.EngineFullConfig(cmd.Context(), name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("engine not found: %s", engineID)
			}
			return err
		}
		return render(cmd, cfg, func() {
			printEngine(cmd, cfg.Engine)
			for i := range cfg.DataStores {
				cmd.Println()
				printDataStore(cmd, &cfg.DataStores[i])
			}
		})
	}

	engine, err := resourceService.DescribeEngine(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("engine not found: %s", engineID)
		}
		return fmt.Errorf("failed to describe engine: %w", err)
	}

	return render(cmd, engine, func() {
		printEngine(cmd, engine)
	})
}

func printEngine(cmd *cobra.Command, engine *domain.Engine) {
	printHeading(cmd, "Engine: "+orNA(engine.DisplayName))
	printField(cmd, "Name", engine.Name)
	printField(cmd, "Solution Type", engine.SolutionType)
	printField(cmd, "Industry Vertical", engine.IndustryVertical)
	printField(cmd, "App Type", engine.AppType)

	if engine.CommonConfig != nil && engine.CommonConfig.CompanyName != "" {
		cmd.Println("\nCommon Config:")
		cmd.Printf("  companyName: %s\n", engine.CommonConfig.CompanyName)
	}

	if sec := engine.SearchEngineConfig; sec != nil {
		cmd.Println("\nSearch Config:")
		cmd.Printf("  Search Tier: %s\n", orNA(sec.SearchTier))
		if len(sec.SearchAddOns) > 0 {
			cmd.Printf("  Search Add-ons: %s\n", strings.Join(sec.SearchAddOns, ", "))
		}
	}

	if len(engine.DataStoreIDs) > 0 {
		cmd.Printf("\nData Stores (%d):\n", len(engine.DataStoreIDs))
		for _, id := range engine.DataStoreIDs {
			cmd.Printf("  - %s\n", id)
		}
	}

	if len(engine.Features) > 0 {
		on := engine.EnabledFeatures()
		cmd.Printf("\nFeatures (%d/%d enabled):\n", len(on), len(engine.Features))
		for _, f := range on {
			cmd.Printf("  %s %s\n", theme.Success.Render("✓"), f)
		}
	}
}

func runEnginesCreate(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	tier, err := cmd.Flags().GetString("search-tier")
	if err != nil {
		return fmt.Errorf("getting search-tier flag: %w", err)
	}
	company, err := cmd.Flags().GetString("company-name")
	if err != nil {
		return fmt.Errorf("getting company-name flag: %w", err)
	}

	spec := domain.EngineSpec{
		EngineID:     args[0],
		DisplayName:  args[1],
		DataStoreIDs: args[2:],
		SearchTier:   domain.SearchTier(tier),
		CompanyName:  company,
	}
	if len(spec.DataStoreIDs) == 0 {
		cmd.PrintErrln(theme.Warning.Render("Warning: No data stores specified. Engine will be created without data stores."))
	}

	result, err := resourceService.CreateEngine(cmd.Context(), spec)
	if err != nil {
		return err
	}

	return render(cmd, result, func() {
		cmd.Printf("%s Successfully created engine: %s\n", theme.Success.Render("✓"), result.EngineName)
		cmd.Printf("Search Tier: %s\n", spec.Engine().SearchEngineConfig.SearchTier)
		if len(spec.DataStoreIDs) > 0 {
			cmd.Printf("Data Stores: %s\n", strings.Join(spec.DataStoreIDs, ", "))
		} else {
			cmd.Println("Data Stores: None")
		}
		if company != "" {
			cmd.Printf("Company: %s\n", company)
		}
	})
}

func runEnginesDelete(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("getting force flag: %w", err)
	}

	engineID := args[0]
	name := domain.ResolveName(engineID, currentConfig(), domain.KindEngines)

	engine, err := resourceService.DescribeEngine(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("engine not found: %s", engineID)
		}
		return fmt.Errorf("failed to fetch engine: %w", err)
	}

	if !force {
		printField(cmd, "Engine", engine.DisplayName)
		printField(cmd, "Name", engine.Name)
		printField(cmd, "Solution Type", engine.SolutionType)
		ok, err := confirm(cmd, "Are you sure you want to delete this engine?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Deletion cancelled.")
			return nil
		}
	}

	return reportDelete(cmd, resourceService.DeleteEngine(cmd.Context(), name))
}

// reportDelete prints a delete outcome and fails the command when it did not succeed.
func reportDelete(cmd *cobra.Command, result domain.DeleteResult) error {
	if err := render(cmd, result, func() {
		if result.OK() {
			cmd.Printf("%s %s\n", theme.Success.Render("✓"), result.Message)
		}
	}); err != nil {
		return err
	}
	if !result.OK() {
		return errors.New(result.Message)
	}
	return nil
}

// reportTarget notes where a list command is looking.
func reportTarget(cmd *cobra.Command, cfg domain.Config) {
	note(cmd, "Listing in project: %s", cfg.ProjectID)
	note(cmd, "Location: %s, Collection: %s", cfg.Location, cfg.CollectionOrDefault())
	if cfg.UseServiceAccount {
		note(cmd, "Authenticated as: %s", resourceService.Principal())
	}
}
