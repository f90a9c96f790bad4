package history

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/store"
)

func TestMergeNewestFirst(t *testing.T) {
	a := []store.AttemptRecord{{Sequence: 9}, {Sequence: 4}, {Sequence: 1}}
	b := []store.AttemptRecord{{Sequence: 7}, {Sequence: 5}}

	got := mergeNewestFirst(a, b, 10)
	var seqs []int64
	for _, r := range got {
		seqs = append(seqs, r.Sequence)
	}
	assert.Equal(t, []int64{9, 7, 5, 4, 1}, seqs)
	assert.Len(t, mergeNewestFirst(a, b, 2), 2)
	assert.Empty(t, mergeNewestFirst(nil, nil, 5))
}

func TestHistory_LoadAndExpand(t *testing.T) {
	st, err := store.Open("file:history_screen?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := progress.NewRecorder(st.AttemptRepo(), nil, progress.WithClock(func() time.Time { return clock }))

	ref, err := course.Default().Section("coshh-m1s1")
	require.NoError(t, err)
	sess, err := quiz.NewSession(ref.Section.Quiz.Questions)
	require.NoError(t, err)
	for _, q := range sess.Questions() {
		sess.SelectAnswer(q.ID, q.CorrectIndex)
	}
	_, err = rec.RecordQuiz(t.Context(), "sam", ref.UnitCode(), ref.Section.Quiz.Title, sess)
	require.NoError(t, err)

	s := New(screen.Deps{Recorder: rec, Learner: "sam"})
	assert.Contains(t, s.View(100, 30), "Loading history")

	s.Update(s.Init()())
	require.Len(t, s.attempts, 1)
	assert.Contains(t, s.View(120, 30), "passed")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 30), "Loading answers")

	s.Update(cmd())
	view := s.View(120, 40)
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, sess.Questions()[0].ID[:10])

	// Collapsing and expanding again reuses the loaded answers.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHistory_Empty(t *testing.T) {
	st, err := store.Open("file:history_empty?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(screen.Deps{Recorder: progress.NewRecorder(st.AttemptRepo(), nil), Learner: "kim"})
	s.Update(s.Init()())
	assert.Contains(t, s.View(100, 30), "No attempts yet")
}
