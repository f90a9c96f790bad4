package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded quiz and exam results for the learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		learner, err := e.requireLearner()
		if err != nil {
			return err
		}
		stats, err := e.recorder.Stats(cmd.Context(), learner)
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Printf("No attempts recorded for %s yet.\n", learner)
			return nil
		}

		fmt.Printf("%-28s  %8s  %5s  %5s  %-6s  %s\n", "Unit", "Attempts", "Best", "Last", "Passed", "Last attempt")
		fmt.Println(strings.Repeat("─", 90))
		for _, s := range stats {
			passed := "no"
			if s.Passed {
				passed = "yes"
			}
			fmt.Printf("%-28s  %8d  %4d%%  %4d%%  %-6s  %s\n",
				truncate(s.UnitCode, 28), s.Attempts, s.BestPercentage, s.LastPercentage,
				passed, s.LastAttempt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}
