package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vilabot/vilabot/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the source catalogue",
	Long: `List the catalogued event sources and show their definitions.

The catalogue is read-only at runtime; edit the catalogue file and
restart to change it.`,
	RunE: runSourcesList,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued sources",
	RunE:  runSourcesList,
}

var sourcesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a source definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesShow,
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesShowCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if sourceRegistry == nil {
		return errors.New("source registry not configured")
	}

	definitions := sourceRegistry.List()
	if len(definitions) == 0 {
		cmd.Println("No sources catalogued.")
		return nil
	}

	cmd.Println("Catalogued sources:")
	cmd.Println()
	for i := range definitions {
		state := "disabled"
		if definitions[i].Enabled {
			state = "enabled"
		}
		cmd.Printf("  %-24s %-20s %s\n", definitions[i].Name, definitions[i].Kind, state)
	}

	return nil
}

func runSourcesShow(cmd *cobra.Command, args []string) error {
	if sourceRegistry == nil {
		return errors.New("source registry not configured")
	}

	definition, err := sourceRegistry.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to show source: %w", err)
	}

	outputSourceDefinition(cmd, definition)

	return nil
}

func outputSourceDefinition(cmd *cobra.Command, definition *domain.SourceDefinition) {
	cmd.Printf("Name:    %s\n", definition.Name)
	cmd.Printf("Kind:    %s\n", definition.Kind)

	if definition.Kind.UsesSearchTemplate() {
		cmd.Printf("URL:     %s\n", definition.SearchURLTemplate)
	} else {
		cmd.Printf("URL:     %s\n", definition.BaseURL)
	}

	state := "disabled"
	if definition.Enabled {
		state = "enabled"
	}
	cmd.Printf("State:   %s\n", state)

	if len(definition.Selectors) > 0 {
		cmd.Println("Selectors:")
		keys := make([]string, 0, len(definition.Selectors))
		for key := range definition.Selectors {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			cmd.Printf("  %s: %s\n", key, definition.Selectors[key])
		}
	}
}
