package cli

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check store wiring health",
	Long: `Builds the configured store, applies the seed file if one is set
and prints the health report as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, _, err := buildContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		health := container.Health.Check(cmd.Context())
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(health); err != nil {
			return err
		}
		if health.Status != observability.HealthStatusHealthy {
			return fmt.Errorf("store is %s", health.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
