package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studycentre/internal/config"
	"github.com/abhisek/studycentre/internal/course"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse course content",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogOnly(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-24s  %-48s  %7s  %8s  %5s\n", "ID", "Title", "Modules", "Sections", "Exams")
		fmt.Println(strings.Repeat("─", 100))

		for _, c := range catalog.Courses() {
			sections := 0
			for _, m := range c.Modules {
				sections += len(m.Sections)
			}
			fmt.Printf("%-24s  %-48s  %7d  %8d  %5d\n",
				c.ID, truncate(c.Title, 48), len(c.Modules), sections, len(c.Exams))
		}
		fmt.Printf("\n%d courses\n", len(catalog.Courses()))
		return nil
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show a course outline with section and exam IDs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogOnly(cmd)
		if err != nil {
			return err
		}
		c, err := catalog.Course(args[0])
		if err != nil {
			return err
		}

		fmt.Println(c.Title)
		if c.Description != "" {
			fmt.Println(c.Description)
		}
		for _, m := range c.Modules {
			fmt.Printf("\n%s\n", m.Title)
			for _, s := range m.Sections {
				quiz := ""
				if s.HasQuiz() {
					quiz = fmt.Sprintf(", quiz of %d", len(s.Quiz.Questions))
				}
				fmt.Printf("  %-20s  %s (%d checks%s)\n", s.ID, s.Title, len(s.Checks), quiz)
			}
		}
		if len(c.Exams) > 0 {
			fmt.Println("\nMock exams")
			for _, e := range c.Exams {
				fmt.Printf("  %-20s  %s\n", e.ID, e.Title)
			}
		}
		return nil
	},
}

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "Browse mock exams",
}

var examsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all mock exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := catalogOnly(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-20s  %-48s  %9s  %6s  %4s\n", "ID", "Title", "Questions", "Time", "Pass")
		fmt.Println(strings.Repeat("─", 95))

		exams := catalog.Exams()
		for _, e := range exams {
			limit := "none"
			if e.TimeLimitSecs > 0 {
				limit = fmt.Sprintf("%dm", e.TimeLimitSecs/60)
			}
			fmt.Printf("%-20s  %-48s  %9d  %6s  %3d%%\n",
				e.ID, truncate(e.Title, 48), e.TotalQuestions, limit, e.PassThreshold)
		}
		fmt.Printf("\n%d exams\n", len(exams))
		return nil
	},
}

func init() {
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesShowCmd)
	examsCmd.AddCommand(examsListCmd)
}

// catalogOnly loads config and content without touching the database.
func catalogOnly(cmd *cobra.Command) (*course.Catalog, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return loadCatalog(cmd, cfg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
