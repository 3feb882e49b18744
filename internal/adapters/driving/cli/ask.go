package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}
	if len(question) > 500 {
		return errors.New("question too long (max 500 characters)")
	}

	if err := initChat(cmd.Context()); err != nil {
		return err
	}

	answer := chatService.Ask(cmd.Context(), question)

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Answer)
	cmd.Println()
	if len(answer.Sources) > 0 {
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			if src.Title != "" {
				cmd.Printf("  - %s (%s)\n", src.Title, src.Source)
			} else {
				cmd.Printf("  - %s\n", src.Source)
			}
		}
	}
	cmd.Printf("Confidence: %s\n", answer.Confidence)
	return nil
}
