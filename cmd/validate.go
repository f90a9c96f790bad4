package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studycentre/internal/course"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check course documents against the schema and content rules",
	Long: `Load every *.json course document under dir and report every problem found.
Without dir, the built-in courses are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			catalog *course.Catalog
			err     error
		)
		if len(args) == 1 {
			catalog, err = course.LoadDir(args[0])
		} else {
			catalog, err = course.Load(course.Embedded())
		}
		if err != nil {
			return fmt.Errorf("invalid content: %w", err)
		}

		sections, checks := 0, 0
		for _, s := range catalog.Sections() {
			sections++
			checks += len(s.Section.Checks)
		}
		fmt.Printf("OK: %d courses, %d sections, %d inline checks, %d exams\n",
			len(catalog.Courses()), sections, checks, len(catalog.Exams()))
		return nil
	},
}
