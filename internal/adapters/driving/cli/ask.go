package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a medical question",
	Long: `Sends a question to the ViMed backend and prints the retrieved answer.

The answer is assembled from passages in the knowledge graph built from
uploaded documents. Words after the command are joined into one question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the raw results as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the --json representation of an answer.
type askOutput struct {
	Question string   `json:"question"`
	Results  []string `json:"results"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	req, err := s.Query.Begin(strings.Join(args, " "))
	if err != nil {
		return err
	}
	answer, err := s.Query.Execute(cmd.Context(), req)
	s.Query.Settle(req, answer, err)

	if err != nil {
		cmd.PrintErrln(domain.FormatQueryFailure(err))
		return reported(fmt.Errorf("ask failed: %w", err))
	}

	if askJSON {
		out := askOutput{Question: req.Text, Results: answer.Results}
		if out.Results == nil {
			out.Results = []string{}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	msgs := s.Query.State().Messages
	cmd.Println(msgs[len(msgs)-1].Content)
	return nil
}
