package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

var (
	graphFetch bool
	graphOpen  bool
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the knowledge graph visualization",
	Long: `Prints the URL of the knowledge graph visualization.

With --fetch the document is downloaded to the cache directory; with --open
it is also opened in the system browser.`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphFetch, "fetch", false, "download the visualization")
	graphCmd.Flags().BoolVar(&graphOpen, "open", false, "download and open in the browser")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if !graphFetch && !graphOpen {
		cmd.Println(s.Visualization.Endpoint())
		return nil
	}

	req := s.Visualization.Begin()
	artifact, err := s.Visualization.Execute(cmd.Context(), req)
	s.Visualization.Complete(req, artifact, err)
	if err != nil {
		cmd.PrintErrln("No graph available")
		return reported(fmt.Errorf("fetch graph: %w", err))
	}

	cmd.Printf("Saved %s (%s)\n", artifact.Path, domain.FormatSize(artifact.SizeBytes))
	if graphOpen {
		return s.Visualization.Open()
	}
	return nil
}
