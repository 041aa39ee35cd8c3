package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/strata-labs/strata/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across text and table units",
	Long: `Searches both collections in parallel, reranks the combined
candidates with a cross-encoder and prints one ranked list. When a
collection or the reranker is unavailable the remaining results are
returned with the degradation noted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if queryService == nil {
		return errors.New("query service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		Limit: searchLimit,
	}

	response, err := queryService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, response)
	}

	return outputSearchTable(cmd, response)
}

func outputSearchJSON(cmd *cobra.Command, response *domain.QueryResponse) error {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, response *domain.QueryResponse) error {
	if len(response.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range response.Results {
		cmd.Printf("  [%d] %s (%.3f) %s\n", i+1, result.Unit.DocumentID, result.Score, result.ContentType)
		cmd.Printf("      %s\n", snippet(result.Unit.Content, 120))
		cmd.Println()
	}

	if response.Degraded() {
		cmd.Printf("Degraded: %s\n", joinDegradations(response.Degradations))
	}

	return nil
}

// snippet trims content to a single display line of at most max
// characters, truncating on a rune boundary.
func snippet(content string, max int) string {
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			content = content[:i]
			break
		}
	}
	if utf8.RuneCountInString(content) > max {
		runes := []rune(content)
		content = string(runes[:max]) + "..."
	}
	return content
}
