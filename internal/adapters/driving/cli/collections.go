package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Inspect collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections in the location",
	Args:  cobra.NoArgs,
	RunE:  runCollectionsList,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections, engines and data stores",
	Long: `List every collection, the engines in default_collection and in each listed
collection, and the data stores of the location.`,
	Args: cobra.NoArgs,
	RunE: runListAll,
}

func init() {
	collectionsCmd.AddCommand(collectionsListCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(listCmd)
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	reportTarget(cmd, currentConfig())

	collections, err := resourceService.ListCollections(cmd.Context())
	if err := listWarning(cmd, "collections", err); err != nil {
		return err
	}

	return render(cmd, collections, func() {
		if len(collections) == 0 {
			cmd.Println("No collections found.")
			return
		}
		cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "CREATED"}, collectionRows(collections)))
		printTotal(cmd, len(collections), "collection")
	})
}

// partialListing reports whether err only cost part of the inventory.
// Authentication failures are never partial.
func partialListing(err error) bool {
	if errors.Is(err, domain.ErrAuth) {
		return false
	}
	return errors.Is(err, domain.ErrAPIDisabled) || errors.Is(err, domain.ErrTransport)
}

func collectionRows(collections []domain.Collection) [][]string {
	rows := make([][]string, 0, len(collections))
	for i := range collections {
		rows = append(rows, []string{
			orNA(domain.ShortName(collections[i].Name)),
			orNA(collections[i].DisplayName),
			orNA(collections[i].CreateTime),
		})
	}
	return rows
}

func runListAll(cmd *cobra.Command, _ []string) error {
	if resourceService == nil {
		return errors.New("resource service not configured")
	}

	reportTarget(cmd, currentConfig())

	inv, err := resourceService.ListAll(cmd.Context())
	if err != nil {
		if inv == nil || !partialListing(err) {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		// Partial inventories are still shown.
		if errors.Is(err, domain.ErrAPIDisabled) {
			warnAPIDisabled(cmd)
		} else {
			cmd.PrintErrln(theme.Warning.Render("Warning: " + err.Error()))
		}
	}

	return render(cmd, inv, func() {
		cmd.Println(theme.Title.Render("Collections"))
		if len(inv.Collections) == 0 {
			cmd.Println("No collections found.")
		} else {
			cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "CREATED"}, collectionRows(inv.Collections)))
		}

		cmd.Println(theme.Title.Render("\nEngines"))
		if len(inv.Engines) == 0 {
			cmd.Println("No engines found.")
		} else {
			cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "TYPE"}, engineRows(inv.Engines)))
		}

		cmd.Println(theme.Title.Render("\nData Stores"))
		if len(inv.DataStores) == 0 {
			cmd.Println("No data stores found.")
		} else {
			cmd.Println(theme.Table([]string{"NAME", "DISPLAY NAME", "CONTENT CONFIG"}, dataStoreRows(inv.DataStores)))
		}

		cmd.Println(theme.Muted.Render(
			"\nTotal: " + pluralCount(len(inv.Collections), "collection") +
				", " + pluralCount(len(inv.Engines), "engine") +
				", " + pluralCount(len(inv.DataStores), "data store"),
		))
	})
}

func pluralCount(n int, noun string) string {
	return fmt.Sprintf("%d %s(s)", n, noun)
}
