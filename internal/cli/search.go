package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muninn-kg/muninn/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed pages and blocks",
	Long: `Runs a full-text search against the document store. Pages are
searched by default; use --blocks to search block contents instead.

Examples:
  muninn search "project planning"
  muninn search --blocks "TODO" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")
		blocks, _ := cmd.Flags().GetBool("blocks")

		st, err := openStore(getConfig(), getGraphPath())
		if err != nil {
			return err
		}
		defer st.Close()

		if blocks {
			hits, err := st.SearchBlocks(ctx, query, limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(hits) == 0 {
				fmt.Println(ui.Hint("No blocks found."))
				return nil
			}
			for _, b := range hits {
				content := b.Content
				if i := strings.IndexByte(content, '\n'); i >= 0 {
					content = content[:i]
				}
				fmt.Printf("%s %s\n", content, ui.Hint(b.ID))
			}
			return nil
		}

		hits, err := st.SearchFiles(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(hits) == 0 {
			fmt.Println(ui.Hint("No pages found."))
			return nil
		}
		for _, f := range hits {
			fmt.Printf("%s %s\n", ui.Title(f.Title), ui.Hint(f.Path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("limit", 20, "Maximum number of results")
	searchCmd.Flags().Bool("blocks", false, "Search block contents instead of pages")
}
