package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

var (
	searchPages int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [idea]",
	Short: "Find repositories for a project idea",
	Long: `Searches for repositories related to a project idea and summarises each one.

Results come in pages of six. Use --pages to keep loading pages until the
requested number is reached or a page comes back empty.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 1, "number of pages to load")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchReport is the --json output.
type searchReport struct {
	Query   string              `json:"query"`
	Results []domain.Repository `json:"results"`
	Cursor  domain.Cursor       `json:"cursor"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctrl, err := searchController()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if err := ctrl.Submit(ctx, strings.Join(args, " "), domain.SubmitFresh); err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return errors.New("enter a project idea to search for")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	for page := 1; page < searchPages && ctrl.Cursor().HasMore; page++ {
		if err := ctrl.Submit(ctx, ctrl.Query(), domain.SubmitLoadMore); err != nil {
			return fmt.Errorf("load more failed: %w", err)
		}
	}

	state := ctrl.State()
	if searchJSON {
		return outputSearchJSON(cmd, state)
	}
	return outputSearchTable(cmd, state)
}

func outputSearchJSON(cmd *cobra.Command, state domain.SearchState) error {
	results := state.Results
	if results == nil {
		results = []domain.Repository{}
	}
	data, err := json.MarshalIndent(searchReport{
		Query:   state.Query,
		Results: results,
		Cursor:  state.Cursor,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, state domain.SearchState) error {
	if len(state.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results for %q:\n", state.Query)
	cmd.Println()
	for i, r := range state.Results {
		cmd.Printf("  [%d] %s\n", i+1, r.Name)
		cmd.Printf("      %s\n", r.URL)
		if r.Description != "" {
			cmd.Printf("      %s\n", r.Description)
		}
		if r.HasSummary() {
			cmd.Printf("      Summary: %s\n", r.Summary)
		}
		cmd.Println()
	}

	cmd.Println(pageFooter(state))
	return nil
}

func pageFooter(state domain.SearchState) string {
	footer := fmt.Sprintf("%d results, page %d", len(state.Results), state.Cursor.Page)
	if state.Cursor.HasMore {
		footer += fmt.Sprintf(". More available: idealens search --pages %d %q", state.Cursor.Next(), state.Query)
	}
	return footer
}

