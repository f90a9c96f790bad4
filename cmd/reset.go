package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded attempt for the learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete progress without --yes")
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		learner, err := e.requireLearner()
		if err != nil {
			return err
		}
		n, err := e.recorder.Reset(cmd.Context(), learner)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d attempts for %s.\n", n, learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
