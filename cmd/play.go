package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studycentre/internal/config"
	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/screen"
	quizscreen "github.com/abhisek/studycentre/internal/screens/quiz"
	"github.com/abhisek/studycentre/internal/screens/section"
)

var playCmd = &cobra.Command{
	Use:   "play <section-id|exam-id>",
	Short: "Open a section or start a mock exam directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}
		start, err := startScreen(catalog, args[0])
		if err != nil {
			return err
		}
		return runApp(cmd, start)
	},
}

// startScreen resolves id against sections first, then exams.
func startScreen(catalog *course.Catalog, id string) (func(screen.Deps) screen.Screen, error) {
	if _, err := catalog.Section(id); err == nil {
		return func(d screen.Deps) screen.Screen { return section.New(d, id) }, nil
	} else if !errors.Is(err, course.ErrNotFound) {
		return nil, err
	}
	if _, err := catalog.Exam(id); err == nil {
		return func(d screen.Deps) screen.Screen { return quizscreen.NewExam(d, id) }, nil
	} else if !errors.Is(err, course.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("no section or exam with id %q (see `studycentre courses list`)", id)
}
