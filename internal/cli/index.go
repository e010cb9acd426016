package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muninn-kg/muninn/internal/config"
	"github.com/muninn-kg/muninn/internal/indexer"
	"github.com/muninn-kg/muninn/internal/ui"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the graph into the document store",
	Long: `Walks all markdown files in the graph directory, extracts page and
block entities, pushes them to the document store, and builds the
knowledge graph. Linking runs after the whole walk, so references to
pages indexed later in the walk still resolve.

Files that fail to read or parse are skipped with a warning. Store
failures and unresolvable links abort the run.

Examples:
  # Index the default graph
  muninn index

  # Index a named graph, pages only
  muninn index --graph work --no-blocks`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath := getGraphPath()
		ctx := cmd.Context()

		graphCfg, err := config.LoadGraphConfig(graphPath)
		if err != nil {
			return err
		}

		indexBlocks := graphCfg.ShouldIndexBlocks()
		if cmd.Flags().Changed("blocks") {
			indexBlocks, _ = cmd.Flags().GetBool("blocks")
		}
		if noBlocks, _ := cmd.Flags().GetBool("no-blocks"); noBlocks {
			indexBlocks = false
		}

		st, err := openStore(getConfig(), graphPath)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Indexing graph: %s\n", ui.FilePath(graphPath))

		spinner := ui.NewSpinner("Indexing files")
		spinner.Start()

		ix := indexer.New(st, logger, indexer.Options{
			IndexBlocks: indexBlocks,
			Excludes:    graphCfg.Excludes(),
			OnFile:      spinner.SetDetail,
		})
		stats, err := ix.Run(ctx, graphPath)
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}

		fmt.Println(ui.Successf("Indexed %d files", stats.Files))
		if indexBlocks {
			fmt.Printf("  %s blocks\n", ui.Bold.Render(fmt.Sprintf("%d", stats.Blocks)))
		}
		fmt.Printf("  %s nodes\n", ui.Bold.Render(fmt.Sprintf("%d", stats.Nodes)))
		fmt.Printf("  %s edges\n", ui.Bold.Render(fmt.Sprintf("%d", stats.Edges)))
		if stats.Skipped > 0 {
			fmt.Printf("  %s\n", ui.Warningf("%d files skipped", stats.Skipped))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().Bool("blocks", true, "Index blocks in addition to pages")
	indexCmd.Flags().Bool("no-blocks", false, "Index pages only (overrides --blocks and muninn.yaml)")
}
