package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vilabot/vilabot/internal/core/domain"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about events",
	Long: `Answers a natural-language question about events in Catalonia.

The question is interpreted, the enabled sources are consulted
concurrently, and the merged events are synthesised into a short answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	if queryService == nil {
		return errors.New("query service not configured")
	}

	ctx := context.Background()

	result, err := queryService.HandleQuery(ctx, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}

	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Answer != "" {
		cmd.Println(result.Answer)
		cmd.Println()
	}

	if len(result.Events) == 0 {
		cmd.Println("No events found.")
		outputSourceErrors(cmd, result)
		return nil
	}

	cmd.Printf("Events (%d):\n", len(result.Events))
	cmd.Println()
	for i := range result.Events {
		// Format: [N] Title / When / Where / Source
		title := result.Events[i].Title
		if title == "" {
			title = "(untitled)"
		}

		cmd.Printf("  [%d] %s\n", i+1, title)
		if when := formatEventDate(&result.Events[i]); when != "" {
			cmd.Printf("      When: %s\n", when)
		}
		if result.Events[i].Location != "" {
			cmd.Printf("      Where: %s\n", result.Events[i].Location)
		}
		if result.Events[i].SourceName != "" {
			cmd.Printf("      Source: %s\n", result.Events[i].SourceName)
		}
		cmd.Println()
	}

	outputSourceErrors(cmd, result)

	return nil
}

// formatEventDate renders an event's date, falling back to the raw text
// when parsing never produced a concrete time.
func formatEventDate(event *domain.Event) string {
	if event.StartTime != nil {
		return event.StartTime.Format("Mon 02 Jan 2006 15:04")
	}
	return event.RawDateText
}

func outputSourceErrors(cmd *cobra.Command, result *domain.QueryResult) {
	if len(result.SourceErrors) == 0 {
		return
	}

	names := make([]string, 0, len(result.SourceErrors))
	for name := range result.SourceErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Printf("Note: %d of %d sources were unavailable: %s\n",
		len(names), result.SourcesQueried, strings.Join(names, ", "))
}
