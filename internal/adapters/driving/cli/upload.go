package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload PDF documents",
	Long: `Uploads PDF documents to the ViMed backend for ingestion into the
knowledge graph. Files that are not PDFs are skipped; duplicate names are
sent once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	candidates := make([]domain.StagedFile, 0, len(args))
	for _, path := range args {
		f, err := domain.StagedFileFromPath(path)
		if err != nil {
			return err
		}
		if !domain.IsPDF(f.Name) {
			cmd.PrintErrf("Skipping %s (not a PDF)\n", f.Name)
		}
		candidates = append(candidates, f)
	}

	if _, err := s.Upload.AddFiles(candidates); err != nil {
		return err
	}

	batch := s.Upload.Batch()
	cmd.Printf("Uploading %d file(s)...\n", batch.Len())
	for _, f := range batch.Files {
		cmd.Printf("  %s (%s)\n", f.Name, domain.FormatSize(f.SizeBytes))
	}

	err = s.Upload.Submit(cmd.Context())
	n, shown := s.Notifier.Current()
	if shown {
		if n.IsError() {
			cmd.PrintErrln(n.Message)
		} else {
			cmd.Println(n.Message)
		}
	}
	if err != nil {
		err = fmt.Errorf("upload failed: %w", err)
		if shown && n.IsError() {
			return reported(err)
		}
		return err
	}
	return nil
}
