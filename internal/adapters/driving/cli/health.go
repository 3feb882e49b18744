package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run a canary question and report system health",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if err := initChat(cmd.Context()); err != nil {
		return err
	}

	health := chatService.HealthCheck(cmd.Context())

	data, err := json.MarshalIndent(health, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal health report: %w", err)
	}
	cmd.Println(string(data))

	if health.Status != "healthy" {
		return fmt.Errorf("system unhealthy: %s", health.Error)
	}
	return nil
}
