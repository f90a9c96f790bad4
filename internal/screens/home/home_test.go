package home

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/screens/courses"
	"github.com/abhisek/studycentre/internal/store"
)

func TestHome_WithoutRecorder(t *testing.T) {
	h := New(screen.Deps{Catalog: course.Default(), Learner: "sam"})
	assert.Nil(t, h.Init())
	assert.True(t, h.menu.Items[2].Disabled, "history needs a recorder")

	view := h.View(100, 40)
	assert.Contains(t, view, "Welcome back, sam")
	assert.Contains(t, view, "not being saved")
}

func TestHome_OpensCourses(t *testing.T) {
	h := New(screen.Deps{Catalog: course.Default()})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*courses.CoursesScreen)
	assert.True(t, ok)
}

func TestHome_Stats(t *testing.T) {
	st, err := store.Open("file:home_stats?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h := New(screen.Deps{
		Catalog:  course.Default(),
		Recorder: progress.NewRecorder(st.AttemptRepo(), nil),
		Learner:  "sam",
	})
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())
	assert.Contains(t, h.View(100, 40), "No quizzes taken yet")

	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	h.Update(statsLoadedMsg{Stats: []store.UnitStats{
		{UnitCode: "COSHH-1.1", Attempts: 2, LastPercentage: 90, Passed: true, LastAttempt: t0.Add(time.Hour)},
		{UnitCode: "FIRE-1.1", Attempts: 1, LastPercentage: 40, LastAttempt: t0},
	}})
	view := h.View(100, 40)
	assert.Contains(t, view, "2 attempted")
	assert.Contains(t, view, "1 passed")
	assert.Contains(t, view, "Last: COSHH-1.1 at 90%")

	assert.NotNil(t, h.Resume(), "returning home reloads stats")
}
