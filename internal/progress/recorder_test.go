package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/store"
	mock_store "github.com/abhisek/studycentre/internal/store/mock"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: "q1", Prompt: "One?", Options: []string{"a", "b"}, CorrectIndex: 0, Category: "alpha"},
		{ID: "q2", Prompt: "Two?", Options: []string{"a", "b"}, CorrectIndex: 1, Category: "beta"},
	}
}

func newTestRecorder(t *testing.T, setup func(*mock_store.MockAttemptRepo)) *Recorder {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockAttemptRepo(ctrl)
	if setup != nil {
		setup(repo)
	}
	return NewRecorder(repo, zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { return "attempt-1" }),
	)
}

func TestRecorder_RecordQuiz(t *testing.T) {
	sess, err := quiz.NewSession(testQuestions())
	require.NoError(t, err)
	sess.SelectAnswer("q1", 0)
	sess.SelectAnswer("q2", 0)

	rec := newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *store.AttemptRecord, answers []store.AnswerRecord) error {
				assert.Equal(t, "attempt-1", rec.AttemptID)
				assert.Equal(t, store.KindQuiz, rec.Kind)
				assert.Equal(t, "coshh-m1s1", rec.UnitCode)
				assert.Equal(t, 1, rec.Score)
				assert.Equal(t, 2, rec.TotalQuestions)
				assert.Equal(t, 50, rec.Percentage)
				assert.False(t, rec.Passed)
				assert.Equal(t, fixedNow, rec.Timestamp)

				require.Len(t, answers, 2)
				assert.True(t, answers[0].Correct)
				assert.Equal(t, "alpha", answers[0].Category)
				assert.False(t, answers[1].Correct)
				assert.Equal(t, 0, answers[1].Selected)
				assert.Equal(t, 1, answers[1].CorrectIndex)
				return nil
			})
	})

	got, err := rec.RecordQuiz(context.Background(), "sam", "coshh-m1s1", "Section Knowledge Check", sess)
	require.NoError(t, err)
	assert.Equal(t, "sam", got.Learner)
}

func TestRecorder_RecordQuiz_Incomplete(t *testing.T) {
	sess, err := quiz.NewSession(testQuestions())
	require.NoError(t, err)
	sess.SelectAnswer("q1", 0)

	rec := newTestRecorder(t, nil)
	_, err = rec.RecordQuiz(context.Background(), "sam", "u1", "", sess)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

func TestRecorder_RecordQuiz_RepoError(t *testing.T) {
	sess, err := quiz.NewSession(testQuestions())
	require.NoError(t, err)
	sess.SelectAnswer("q1", 0)
	sess.SelectAnswer("q2", 1)

	boom := errors.New("disk full")
	rec := newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)
	})

	got, err := rec.RecordQuiz(context.Background(), "sam", "u1", "", sess)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 100, got.Percentage, "score is still returned")
}

func TestRecorder_PassThreshold(t *testing.T) {
	sess, err := quiz.NewSession(testQuestions())
	require.NoError(t, err)
	sess.SelectAnswer("q1", 0)
	sess.SelectAnswer("q2", 0)

	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockAttemptRepo(ctrl)
	repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	rec := NewRecorder(repo, nil, WithQuizPassThreshold(50))
	got, err := rec.RecordQuiz(context.Background(), "sam", "u1", "", sess)
	require.NoError(t, err)
	assert.True(t, got.Passed)
	assert.NotEmpty(t, got.AttemptID)
}

func TestRecorder_RecordExam(t *testing.T) {
	clock := fixedNow
	cfg := exam.Config{ID: "demo-exam", Title: "Demo", TotalQuestions: 2, TimeLimit: time.Minute, PassThreshold: 50}
	e, err := exam.Start(cfg, testQuestions(), exam.WithClock(func() time.Time { return clock }))
	require.NoError(t, err)

	rec := newTestRecorder(t, nil)
	_, err = rec.RecordExam(context.Background(), "sam", e)
	assert.ErrorIs(t, err, ErrNotFinished)

	first := e.Session().Questions()[0]
	_, _, err = e.Answer(first.ID, first.CorrectIndex, clock)
	require.NoError(t, err)
	e.Finish(clock.Add(2 * time.Minute))

	rec = newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(_ context.Context, rec *store.AttemptRecord, _ []store.AnswerRecord) error {
				assert.Equal(t, store.KindExam, rec.Kind)
				assert.Equal(t, "demo-exam", rec.UnitCode)
				assert.True(t, rec.Expired)
				assert.True(t, rec.Passed)
				assert.Equal(t, time.Minute, rec.TimeTaken)
				return nil
			})
	})
	_, err = rec.RecordExam(context.Background(), "sam", e)
	require.NoError(t, err)
}

func TestRecorder_RecordCheck(t *testing.T) {
	rec := newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(_ context.Context, rec *store.AttemptRecord, answers []store.AnswerRecord) error {
				assert.Equal(t, store.KindCheck, rec.Kind)
				assert.Equal(t, "coshh-m1s1-c1", rec.UnitCode)
				assert.Equal(t, "coshh-m1s1", rec.Title)
				assert.Equal(t, 100, rec.Percentage)
				assert.Equal(t, 2, answers[0].Selected)
				return nil
			})
	})

	_, err := rec.RecordCheck(context.Background(), "sam", "coshh-m1s1", quiz.Reveal{
		QuestionID: "coshh-m1s1-c1", Selected: 2, CorrectIndex: 2, IsCorrect: true,
	})
	require.NoError(t, err)
}

func TestRecorder_History(t *testing.T) {
	rec := newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().QueryAttempts(gomock.Any(), store.QueryOpts{Learner: "sam", Kind: store.KindQuiz}).
			Return([]store.AttemptRecord{{AttemptID: "a1"}, {AttemptID: "a2"}, {AttemptID: "a3"}}, nil)
	})

	got, err := rec.History(context.Background(), "sam", store.KindQuiz, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a3", got[0].AttemptID)
	assert.Equal(t, "a2", got[1].AttemptID)
}

func TestRecorder_Stats(t *testing.T) {
	want := []store.UnitStats{{UnitCode: "u1", Attempts: 2, BestPercentage: 90}}
	rec := newTestRecorder(t, func(m *mock_store.MockAttemptRepo) {
		m.EXPECT().UnitStats(gomock.Any(), "sam", "").Return(want, nil)
	})

	got, err := rec.Stats(context.Background(), "sam")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecorder_WithRealStore(t *testing.T) {
	s, err := store.Open("file:progress_real?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	rec := NewRecorder(s.AttemptRepo(), zap.NewNop())
	ctx := context.Background()

	for _, choice := range []int{0, 1} {
		sess, err := quiz.NewSession(testQuestions())
		require.NoError(t, err)
		sess.SelectAnswer("q1", choice)
		sess.SelectAnswer("q2", 1)
		_, err = rec.RecordQuiz(ctx, "sam", "u1", "Quiz", sess)
		require.NoError(t, err)
	}

	stats, err := rec.Stats(ctx, "sam")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Attempts)
	assert.Equal(t, 100, stats[0].BestPercentage)
	assert.Equal(t, 50, stats[0].LastPercentage)
	assert.True(t, stats[0].Passed)

	history, err := rec.History(ctx, "sam", "", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	answers, err := rec.Answers(ctx, history[0].AttemptID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)

	n, err := rec.Reset(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
