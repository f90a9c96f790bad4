package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/store"
	mock_store "github.com/abhisek/studycentre/internal/store/mock"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	h      *Handler
	clock  time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ts := &testServer{t: t, clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	rec := progress.NewRecorder(s.AttemptRepo(), zap.NewNop())
	h := NewHandler(course.Default(), rec, time.Hour, zap.NewNop())
	h.now = func() time.Time { return ts.clock }
	seq := 0
	h.newID = func() string { seq++; return fmt.Sprintf("sess-%d", seq) }
	h.rng = func() *rand.Rand { return rand.New(rand.NewPCG(7, 7)) }

	ts.h = h
	ts.engine = SetupRouter(h, []string{"http://localhost:3000"})
	return ts
}

func (ts *testServer) do(method, path, learner string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if learner != "" {
		req.Header.Set(LearnerHeader, learner)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

func TestListCourses(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/v1/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Courses []courseSummary `json:"courses"`
	}](t, w)
	require.Len(t, resp.Courses, 3)
	assert.Equal(t, "asbestos-awareness", resp.Courses[0].ID)
	assert.Len(t, resp.Courses[0].Exams, 1)
}

func TestGetSection_HidesAnswers(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/v1/sections/coshh-m1s1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correctIndex")
	assert.NotContains(t, w.Body.String(), "correct_index")

	d := decode[sectionDetail](t, w)
	assert.Equal(t, "coshh-awareness", d.CourseID)
	assert.NotEmpty(t, d.Checks)
	require.NotNil(t, d.Quiz)

	w = ts.do(http.MethodGet, "/api/v1/sections/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLearnerHeaderRequired(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t)
	ref, err := course.Default().Section("coshh-m1s1")
	require.NoError(t, err)
	questions := ref.Section.Quiz.Questions

	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[sessionView](t, w)
	assert.Equal(t, "sess-1", view.ID)
	assert.Equal(t, len(questions), view.Total)
	assert.False(t, view.Complete)

	// Answer the first one wrong, the rest right.
	for i, q := range questions {
		choice := q.CorrectIndex
		if i == 0 {
			choice = (q.CorrectIndex + 1) % len(q.Options)
		}
		w = ts.do(http.MethodPost, "/api/v1/sessions/sess-1/answers", "sam",
			map[string]any{"question_id": q.ID, "option": choice})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[answerResponse](t, w)
		assert.True(t, resp.Accepted)
		assert.Equal(t, i != 0, resp.Reveal.IsCorrect)
	}

	// Re-answering is a no-op that returns the original reveal.
	w = ts.do(http.MethodPost, "/api/v1/sessions/sess-1/answers", "sam",
		map[string]any{"question_id": questions[0].ID, "option": questions[0].CorrectIndex})
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[answerResponse](t, w)
	assert.False(t, again.Accepted)
	assert.False(t, again.Reveal.IsCorrect)

	w = ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	final := decode[sessionView](t, w)
	require.True(t, final.Complete)
	require.NotNil(t, final.Score)
	assert.Equal(t, len(questions)-1, final.Score.Correct)
	assert.NotEmpty(t, final.AttemptID)

	w = ts.do(http.MethodGet, "/api/v1/attempts", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	attempts := decode[struct {
		Attempts []attemptView `json:"attempts"`
	}](t, w)
	require.Len(t, attempts.Attempts, 1)
	assert.Equal(t, "coshh-m1s1", attempts.Attempts[0].UnitCode)
	assert.Equal(t, "quiz", attempts.Attempts[0].Kind)

	w = ts.do(http.MethodGet, "/api/v1/stats", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unit_code":"coshh-m1s1"`)
}

func TestSubmitAnswer_Validation(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[sessionView](t, w)
	first := view.Questions[0]

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing option", map[string]any{"question_id": first.ID}, http.StatusBadRequest},
		{"missing question", map[string]any{"option": 0}, http.StatusBadRequest},
		{"negative option", map[string]any{"question_id": first.ID, "option": -1}, http.StatusBadRequest},
		{"option past end", map[string]any{"question_id": first.ID, "option": len(first.Options)}, http.StatusBadRequest},
		{"unknown question", map[string]any{"question_id": "nope", "option": 0}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/api/v1/sessions/"+view.ID+"/answers", "sam", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestSessionsAreScopedToLearner(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "kim", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionTTL(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	ts.clock = ts.clock.Add(59 * time.Minute)
	w = ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code, "access within TTL keeps the session alive")

	ts.clock = ts.clock.Add(61 * time.Minute)
	w = ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "sam", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, ts.h.sessions.len())
}

func TestExamFlow_FinishEarly(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/exams/fire-safety", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view := decode[sessionView](t, w)
	assert.Equal(t, 15, view.Total)
	require.NotNil(t, view.RemainingSecs)
	assert.Equal(t, 1200, *view.RemainingSecs)

	ts.clock = ts.clock.Add(5 * time.Minute)
	w = ts.do(http.MethodPost, "/api/v1/sessions/"+view.ID+"/finish", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[sessionView](t, w)
	require.NotNil(t, done.Result)
	assert.Equal(t, 0, done.Result.Score.Correct)
	assert.Equal(t, 15, done.Result.Score.Total)
	assert.False(t, done.Result.Passed)
	assert.NotEmpty(t, done.AttemptID)
}

func TestExamFlow_Expiry(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/exams/fire-safety", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[sessionView](t, w)

	ts.clock = ts.clock.Add(21 * time.Minute)
	q := view.Questions[0]
	w = ts.do(http.MethodPost, "/api/v1/sessions/"+view.ID+"/answers", "sam",
		map[string]any{"question_id": q.ID, "option": 0})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/sessions/"+view.ID, "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	final := decode[sessionView](t, w)
	require.NotNil(t, final.Result)
	assert.True(t, final.Result.Expired)
	assert.Equal(t, 0, *final.RemainingSecs)

	w = ts.do(http.MethodGet, "/api/v1/attempts?kind=exam", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	attempts := decode[struct {
		Attempts []attemptView `json:"attempts"`
	}](t, w)
	require.Len(t, attempts.Attempts, 1, "expired exam recorded exactly once")
	assert.True(t, attempts.Attempts[0].Expired)
}

func TestFinishQuizRejected(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/sessions/sess-1/finish", "sam", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnswerCheck(t *testing.T) {
	ts := newTestServer(t)
	ref, err := course.Default().Section("coshh-m1s1")
	require.NoError(t, err)
	check := ref.Section.Checks[0]

	w := ts.do(http.MethodPost, "/api/v1/checks/"+check.ID+"/answers", "sam",
		map[string]any{"option": check.CorrectIndex})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[checkResponse](t, w)
	assert.True(t, resp.Reveal.IsCorrect)
	assert.Equal(t, check.CorrectIndex, resp.Reveal.CorrectIndex)
	assert.Equal(t, "coshh-m1s1", resp.SectionID)
	assert.True(t, resp.Recorded)

	w = ts.do(http.MethodPost, "/api/v1/checks/"+check.ID+"/answers", "sam",
		map[string]any{"option": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/checks/nope/answers", "sam",
		map[string]any{"option": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAttempts_BadQuery(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/attempts?limit=x", "sam", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/attempts?kind=lesson", "sam", nil).Code)
}

func TestQuizFlow_RetriesFailedRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockAttemptRepo(ctrl)
	gomock.InOrder(
		repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("database is locked")),
		repo.EXPECT().RecordAttempt(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *store.AttemptRecord, answers []store.AnswerRecord) error {
				assert.Equal(t, "coshh-m1s1", rec.UnitCode)
				assert.NotEmpty(t, answers)
				return nil
			}),
	)

	h := NewHandler(course.Default(), progress.NewRecorder(repo, zap.NewNop()), time.Hour, zap.NewNop())
	h.newID = func() string { return "sess-1" }
	ts := &testServer{t: t, h: h, engine: SetupRouter(h, []string{"http://localhost:3000"})}

	ref, err := course.Default().Section("coshh-m1s1")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/sections/coshh-m1s1/quiz", "sam", nil).Code)
	for _, q := range ref.Section.Quiz.Questions {
		w := ts.do(http.MethodPost, "/api/v1/sessions/sess-1/answers", "sam",
			map[string]any{"question_id": q.ID, "option": q.CorrectIndex})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// The write on the last answer failed; reading the session stores it.
	w := ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[sessionView](t, w)
	assert.True(t, view.Complete)
	assert.NotEmpty(t, view.AttemptID)

	// Once stored, later requests do not write again.
	w = ts.do(http.MethodGet, "/api/v1/sessions/sess-1", "sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, view.AttemptID, decode[sessionView](t, w).AttemptID)
}
