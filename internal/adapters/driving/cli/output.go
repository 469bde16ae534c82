package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

const notAvailable = "N/A"

// writeStructured writes v as JSON or YAML. It reports false for the table
// format so the caller can render its own view.
func writeStructured(w io.Writer, format domain.OutputFormat, v any) (bool, error) {
	switch format {
	case domain.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return true, nil
	case domain.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// render writes v in the configured structured format, or calls table.
func render(cmd *cobra.Command, v any, table func()) error {
	done, err := writeStructured(cmd.OutOrStdout(), currentConfig().Format, v)
	if done || err != nil {
		return err
	}
	table()
	return nil
}

// listWarning reports a list failure. A disabled API is a warning and the
// command continues with what it has; anything else fails the command.
func listWarning(cmd *cobra.Command, what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAPIDisabled) {
		warnAPIDisabled(cmd)
		return nil
	}
	return fmt.Errorf("failed to list %s: %w", what, err)
}

func warnAPIDisabled(cmd *cobra.Command) {
	cmd.PrintErrln(theme.Warning.Render(fmt.Sprintf(
		"Warning: Discovery Engine API is not enabled for project %s. Enable it with: gcloud services enable discoveryengine.googleapis.com",
		currentConfig().ProjectID,
	)))
}

// printField writes one "Label: value" line, substituting N/A for empty values.
func printField(cmd *cobra.Command, label, value string) {
	if value == "" {
		value = notAvailable
	}
	cmd.Printf("%s %s\n", theme.Label.Render(label+":"), value)
}

// printHeading writes a title between rules.
func printHeading(cmd *cobra.Command, title string) {
	rule := strings.Repeat("=", 80)
	cmd.Println(rule)
	cmd.Println(theme.Title.Render(title))
	cmd.Println(rule)
}

func printTotal(cmd *cobra.Command, n int, noun string) {
	cmd.Println(theme.Muted.Render(fmt.Sprintf("\nTotal: %d %s(s)", n, noun)))
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// note writes context for humans to stderr. Structured output stays clean.
func note(cmd *cobra.Command, format string, args ...any) {
	if currentConfig().Format != domain.OutputTable && currentConfig().Format != "" {
		return
	}
	cmd.PrintErrf(format+"\n", args...)
}
