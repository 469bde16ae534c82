package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gemctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored defaults",
	Long: `Manage defaults stored in ~/.gemctl/config.toml.

Stored values apply when neither a flag nor an environment variable sets them.
Keys: project, location, collection, format.`,
	Annotations: map[string]string{annotationNoService: "true"},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a default value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored values",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	value := store.GetString(args[0])
	if value == "" {
		return fmt.Errorf("%s is not set", args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	if err := store.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s Set %s = %s\n", theme.Success.Render("✓"), args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	if err := store.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("%s Unset %s\n", theme.Success.Render("✓"), args[0])
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	store, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	values := make(map[string]string)
	for _, k := range store.Keys() {
		values[k] = store.GetString(k)
	}

	done, err := writeStructured(cmd.OutOrStdout(), configFormat(store), values)
	if done || err != nil {
		return err
	}

	if len(values) == 0 {
		cmd.Printf("No values stored in %s\n", store.Path())
		return nil
	}
	rows := make([][]string, 0, len(values))
	for _, k := range store.Keys() {
		rows = append(rows, []string{k, values[k]})
	}
	cmd.Println(theme.Table([]string{"KEY", "VALUE"}, rows))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, err := openConfigStore()
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	cmd.Println(store.Path())
	return nil
}

// configFormat picks the output format for config commands, which run
// without a resolved configuration.
func configFormat(store *file.ConfigStore) domain.OutputFormat {
	if f, err := domain.ParseOutputFormat(flagFormat); err == nil {
		return f
	}
	if f, err := domain.ParseOutputFormat(store.GetString(driven.ConfigKeyFormat)); err == nil {
		return f
	}
	return domain.OutputTable
}
