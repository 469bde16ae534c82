package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// indexTimeLayout renders document index times.
const indexTimeLayout = "01/02/2006, 03:04:05 PM"

var dataStoresCmd = &cobra.Command{
	Use:     "data-stores",
	Aliases: []string{"datastores", "ds"},
	Short:   "Manage data stores",
	Long:    `Commands for listing, inspecting, creating, importing into and deleting data stores.`,
}

var dataStoresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List data stores in the location",
	Args:  cobra.NoArgs,
	RunE:  runDataStoresList,
}

var dataStoresDescribeCmd = &cobra.Command{
	Use:   "describe [data-store-id]",
	Short: "Describe a data store",
	Long:  `Describe a data store. DATA_STORE_ID may be a bare ID or a full resource name.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDataStoresDescribe,
}

var dataStoresCreateFromGCSCmd = &cobra.Command{
	Use:   "create-from-gcs [data-store-id] [display-name] [gcs-uri]",
	Short: "Create a data store and import documents from Cloud Storage",
	Long: `Create a data store, wait for it to exist, then start importing documents
from a Cloud Storage URI. The import runs in the background; its operation
name is printed.

Examples:
  gemctl data-stores create-from-gcs my-ds "My Docs" "gs://bucket/docs/*"
  gemctl data-stores create-from-gcs my-ds "My Docs" "gs://bucket/docs/*" --reconciliation-mode FULL`,
	Args: cobra.ExactArgs(3),
	RunE: runDataStoresCreateFromGCS,
}

var dataStoresListDocumentsCmd = &cobra.Command{
	Use:   "list-documents [data-store-id]",
	Short: "List documents in a data store branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataStoresListDocuments,
}

var dataStoresDeleteCmd = &cobra.Command{
	Use:   "delete [data-store-id]",
	Short: "Delete a data store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataStoresDelete,
}

func init() {
	dataStoresCreateFromGCSCmd.Flags().String("data-schema", string(domain.DataSchemaContent),
		"Layout of the source files: content, custom, csv or document")
	dataStoresCreateFromGCSCmd.Flags().String("reconciliation-mode", string(domain.ReconciliationIncremental),
		"INCREMENTAL merges into existing documents, FULL replaces them")

	dataStoresListDocumentsCmd.Flags().String("branch", domain.DefaultBranch, "Branch to list")

	dataStoresDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	dataStoresCmd.AddCommand(dataStoresListCmd)
	dataStoresCmd.AddCommand(dataStoresDescribeCmd)
	dataStoresCmd.AddCommand(dataStoresCreateFromGCSCmd)
	dataStoresCmd.AddCommand(dataStoresListDocumentsCmd)
	dataStoresCmd.AddCommand(dataStoresDeleteCmd)
	rootCmd.AddCommand(dataStoresCmd)
}

func runDataStoresList(cmd *cobra.Command, _ []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	reportTarget(cmd, currentConfig())

	dataStores, err := resourceService.ListDataStores(cmd.Context())
	if err := listWarning(cmd, "data stores", err); err != nil {
		return err
	}

	return render(cmd, dataStores, func() {
		if len(dataStores) == 0 {
			cmd.Println("No data stores found.")
			return
		}
		cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "CONTENT CONFIG"}, dataStoreRows(dataStores)))
		printTotal(cmd, len(dataStores), "data store")
	})
}

func dataStoreRows(dataStores []domain.DataStore) [][]string {
	rows := make([][]string, 0, len(dataStores))
	for i := range dataStores {
		rows = append(rows, []string{
			orNA(domain.ShortName(dataStores[i].Name)),
			orNA(dataStores[i].DisplayName),
			orNA(dataStores[i].ContentConfig),
		})
	}
	return rows
}

func runDataStoresDescribe(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	dataStoreID := args[0]
	name := domain.ResolveName(dataStoreID, currentConfig(), domain.KindDataStores)

	ds, err := resourceService.DescribeDataStore(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("data store not found: %s", dataStoreID)
		}
		return fmt.Errorf("failed to describe data store: %w", err)
	}

	return render(cmd, ds, func() {
		printDataStore(cmd, ds)
	})
}

func printDataStore(cmd *cobra.Command, ds *domain.DataStore) {
	printHeading(cmd, "Data Store: "+orNA(ds.DisplayName))
	printField(cmd, "Name", ds.Name)
	printField(cmd, "Industry Vertical", ds.IndustryVertical)
	printField(cmd, "Content Config", ds.ContentConfig)
	printField(cmd, "Created", ds.CreateTime)
	if len(ds.SolutionTypes) > 0 {
		printField(cmd, "Solution Types", strings.Join(ds.SolutionTypes, ", "))
	}
	if ds.ACLEnabled {
		printField(cmd, "ACL Enabled", "true")
	}

	if be := ds.BillingEstimation; be != nil {
		cmd.Println("\nBilling Estimation:")
		cmd.Printf("  Size: %.2f MB\n", be.SizeMB())
		cmd.Printf("  Updated: %s\n", orNA(be.UnstructuredDataUpdateTime))
	}

	if dpc := ds.DocumentProcessingConfig; dpc != nil {
		cmd.Println("\nDocument Processing:")
		if cc := dpc.ChunkingConfig; cc != nil && cc.LayoutBasedChunkingConfig != nil {
			cmd.Printf("  Chunk Size: %d\n", cc.LayoutBasedChunkingConfig.ChunkSize)
		}
		if pc := dpc.DefaultParsingConfig; pc != nil && pc.LayoutParsingConfig != nil {
			if pc.LayoutParsingConfig.EnableTableAnnotation {
				cmd.Printf("  %s Table annotation enabled\n", theme.Success.Render("✓"))
			}
			if pc.LayoutParsingConfig.EnableImageAnnotation {
				cmd.Printf("  %s Image annotation enabled\n", theme.Success.Render("✓"))
			}
		}
	}

	if ds.Schema != nil {
		cmd.Printf("\nSchema: %s\n", orNA(ds.Schema.Name))
	}
}

func runDataStoresCreateFromGCS(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	schema, err := cmd.Flags().GetString("data-schema")
	if err != nil {
		return fmt.Errorf("getting data-schema flag: %w", err)
	}
	mode, err := cmd.Flags().GetString("reconciliation-mode")
	if err != nil {
		return fmt.Errorf("getting reconciliation-mode flag: %w", err)
	}

	spec := domain.ImportSpec{
		DataStoreID:        args[0],
		DisplayName:        args[1],
		SourceURI:          args[2],
		DataSchema:         domain.DataSchema(schema),
		ReconciliationMode: domain.ReconciliationMode(strings.ToUpper(mode)),
	}.WithDefaults()

	result, err := resourceService.CreateDataStoreFromSource(cmd.Context(), spec)
	if err != nil {
		if result != nil && result.DataStoreName != "" {
			cmd.PrintErrf("Data store %s exists but has no documents imported.\n", result.DataStoreName)
		}
		return err
	}

	return render(cmd, result, func() {
		cmd.Printf("%s Successfully created data store: %s\n", theme.Success.Render("✓"), result.DataStoreName)
		cmd.Printf("GCS URI: %s\n", spec.SourceURI)
		cmd.Printf("Data Schema: %s\n", spec.DataSchema)
		cmd.Printf("Reconciliation Mode: %s\n", spec.ReconciliationMode)
		importOp := notAvailable
		if result.ImportOperation != nil && result.ImportOperation.Name != "" {
			importOp = result.ImportOperation.Name
		}
		cmd.Printf("Import Operation: %s\n", importOp)
	})
}

func runDataStoresListDocuments(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	branch, err := cmd.Flags().GetString("branch")
	if err != nil {
		return fmt.Errorf("getting branch flag: %w", err)
	}

	dataStoreID := args[0]
	name := domain.ResolveName(dataStoreID, currentConfig(), domain.KindDataStores)

	docs, err := resourceService.ListDocuments(cmd.Context(), name, branch)
	if err := listWarning(cmd, "documents", err); err != nil {
		return err
	}

	return render(cmd, docs, func() {
		if len(docs) == 0 {
			cmd.Println("No documents found in this data store.")
			return
		}
		printHeading(cmd, "Documents in Data Store: "+dataStoreID)
		printField(cmd, "Branch", branch)
		cmd.Println(theme.Table([]string{"ID", "URI", "INDEX TIME"}, documentRows(docs)))
		printTotal(cmd, len(docs), "document")
	})
}

func documentRows(docs []domain.Document) [][]string {
	rows := make([][]string, 0, len(docs))
	for i := range docs {
		indexed := orNA(docs[i].IndexTime)
		if t, ok := docs[i].IndexedAt(); ok {
			indexed = t.Format(indexTimeLayout)
		}
		rows = append(rows, []string{
			truncate(orNA(docs[i].ID), 40),
			truncate(orNA(docs[i].URI()), 50),
			indexed,
		})
	}
	return rows
}

func runDataStoresDelete(cmd *cobra.Command, args []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("getting force flag: %w", err)
	}

	dataStoreID := args[0]
	name := domain.ResolveName(dataStoreID, currentConfig(), domain.KindDataStores)

	ds, err := resourceService.DescribeDataStore(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("data store not found: %s", dataStoreID)
		}
		return fmt.Errorf("failed to fetch data store: %w", err)
	}

	if !force {
		printField(cmd, "Data Store", ds.DisplayName)
		printField(cmd, "Name", ds.Name)
		printField(cmd, "Content Config", ds.ContentConfig)
		printField(cmd, "Created", ds.CreateTime)
		ok, err := confirm(cmd, "Are you sure you want to delete this data store?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Deletion cancelled.")
			return nil
		}
	}

	return reportDelete(cmd, resourceService.DeleteDataStore(cmd.Context(), name))
}
