package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/supportrag/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Crawl the support site, load local documents and build the index",
	Long: `Runs the complete ingestion pipeline: breadth-first crawl of the
configured support section, PDF and DOCX loading from the data
directories, chunking, embedding, and vector-index construction.
Each run rebuilds the index from scratch.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initIngest(); err != nil {
		return err
	}

	stats, err := ingestService.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return fmt.Errorf("no documents were processed: check site.support_root and the data directories")
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Println(strings.Repeat("=", 60))
	cmd.Println("Ingestion summary")
	cmd.Println(strings.Repeat("=", 60))
	cmd.Printf("Documents:    %d\n", stats.TotalDocuments)
	cmd.Printf("Chunks:       %d\n", stats.TotalChunks)
	cmd.Printf("Web pages:    %d (from %d URLs visited)\n", stats.WebPages, stats.URLsVisited)
	cmd.Printf("PDFs:         %d\n", stats.PDFs)
	cmd.Printf("DOCX files:   %d\n", stats.DOCXs)
	cmd.Printf("Sources:      %d distinct\n", len(stats.Sources))
	if cfg != nil {
		cmd.Printf("Index dir:    %s\n", cfg.Data.IndexDir)
	}
	return nil
}
