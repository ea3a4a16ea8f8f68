package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// searchSnippetLength caps how much chunk text the table output shows.
const searchSnippetLength = 160

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chunks",
	Long: `Performs similarity search across all indexed chunks and prints the
closest matches with their cosine distance. Lower distance means more
relevant.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchResults, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retrievalService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] distance %.4f\n", i+1, results[i].Distance)
		if source := results[i].Metadata["source"]; source != "" {
			cmd.Printf("      Source: %s\n", source)
		}
		cmd.Printf("      %s\n", snippet(results[i].Text))
		cmd.Println()
	}

	return nil
}

// snippet trims chunk text to a single displayable line.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= searchSnippetLength {
		return text
	}
	return string(runes[:searchSnippetLength]) + "..."
}
