package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved session: progress, missed questions and position",
	Long: `Delete the persisted session record. The next run starts from the first
question with nothing answered. Answer history in the event store is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.gateway.Delete(cmd.Context()); err != nil {
			return fmt.Errorf("delete session record: %w", err)
		}
		rt.log.Info("state.deleted", map[string]any{"storage": rt.cfg.Storage})
		fmt.Fprintln(cmd.OutOrStdout(), "Session reset.")
		return nil
	},
}
