// Package cli wires the application together and exposes it as cobra
// commands: ingest, ask, serve, health, mcp, version.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/supportrag/internal/core/ports/driven"
	"github.com/clearbrook-labs/supportrag/internal/core/ports/driving"
	"github.com/clearbrook-labs/supportrag/internal/logger"
)

var version = "dev"

var (
	configPath string
	verbose    bool
)

// Services are package-level so tests can substitute doubles.
var (
	chatService   driving.ChatService
	ingestService driving.IngestService
	vectorStore   driven.VectorStore
)

var rootCmd = &cobra.Command{
	Use:   "supportrag",
	Short: "Retrieval-augmented customer-support chatbot",
	Long: `supportrag crawls a support website, ingests local PDF and DOCX
documents, indexes everything into a vector store, and answers questions
grounded in the indexed content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
