// Package api serves courses, quizzes, inline checks and mock exams over HTTP.
package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/store"
)

// LearnerHeader identifies the learner on every learner-scoped request.
const LearnerHeader = "X-Learner"

const learnerKey = "learner"

type Handler struct {
	catalog  *course.Catalog
	recorder *progress.Recorder
	sessions *sessionCache
	log      *zap.Logger

	now   func() time.Time
	newID func() string
	rng   func() *rand.Rand
}

func NewHandler(catalog *course.Catalog, recorder *progress.Recorder, sessionTTL time.Duration, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:  catalog,
		recorder: recorder,
		sessions: newSessionCache(sessionTTL),
		log:      log,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		rng:      func() *rand.Rand { return nil },
	}
}

// RunJanitor evicts expired sessions until ctx is cancelled.
func (h *Handler) RunJanitor(ctx context.Context, interval time.Duration) {
	h.sessions.janitor(ctx, interval, h.now, func(n int) {
		h.log.Debug("evicted expired sessions", zap.Int("count", n))
	})
}

func (h *Handler) requireLearner(c *gin.Context) {
	learner := c.GetHeader(LearnerHeader)
	if learner == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": LearnerHeader + " header is required"})
		return
	}
	c.Set(learnerKey, learner)
	c.Next()
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ListCourses(c *gin.Context) {
	courses := h.catalog.Courses()
	out := make([]courseSummary, 0, len(courses))
	for _, co := range courses {
		out = append(out, summarizeCourse(co))
	}
	c.JSON(http.StatusOK, gin.H{"courses": out})
}

func (h *Handler) GetSection(c *gin.Context) {
	ref, err := h.catalog.Section(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, detailSection(ref))
}

func (h *Handler) StartQuiz(c *gin.Context) {
	ref, err := h.catalog.Section(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}
	if !ref.Section.HasQuiz() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "section has no quiz"})
		return
	}

	sess, err := quiz.NewSession(ref.Section.Quiz.Questions, quiz.WithClock(h.now))
	if err != nil {
		h.internalError(c, "start quiz", err)
		return
	}

	live := &liveSession{
		ID:       h.newID(),
		Learner:  c.GetString(learnerKey),
		Kind:     store.KindQuiz,
		UnitCode: ref.UnitCode(),
		Title:    ref.Section.Quiz.Title,
		quiz:     sess,
	}
	now := h.now()
	h.sessions.put(live, now)
	h.log.Info("quiz started",
		zap.String("session_id", live.ID),
		zap.String("learner", live.Learner),
		zap.String("unit", live.UnitCode),
	)

	live.mu.Lock()
	defer live.mu.Unlock()
	c.JSON(http.StatusCreated, live.view(now))
}

func (h *Handler) StartExam(c *gin.Context) {
	ex, err := h.catalog.Exam(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	opts := []exam.Option{exam.WithClock(h.now)}
	if rng := h.rng(); rng != nil {
		opts = append(opts, exam.WithRand(rng))
	}
	e, err := exam.Start(exam.ConfigFrom(ex), ex.Bank, opts...)
	if err != nil {
		h.internalError(c, "start exam", err)
		return
	}

	live := &liveSession{
		ID:       h.newID(),
		Learner:  c.GetString(learnerKey),
		Kind:     store.KindExam,
		UnitCode: ex.ID,
		Title:    ex.Title,
		exam:     e,
	}
	now := h.now()
	h.sessions.put(live, now)
	h.log.Info("exam started",
		zap.String("session_id", live.ID),
		zap.String("learner", live.Learner),
		zap.String("exam", ex.ID),
	)

	live.mu.Lock()
	defer live.mu.Unlock()
	c.JSON(http.StatusCreated, live.view(now))
}

func (h *Handler) GetSession(c *gin.Context) {
	live, ok := h.lookup(c)
	if !ok {
		return
	}
	now := h.now()

	live.mu.Lock()
	defer live.mu.Unlock()
	if live.exam != nil && !live.exam.Finished() && live.exam.Expired(now) {
		live.exam.Finish(now)
	}
	if h.finished(live) {
		h.record(c.Request.Context(), live)
	}
	c.JSON(http.StatusOK, live.view(now))
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	live, ok := h.lookup(c)
	if !ok {
		return
	}
	now := h.now()

	live.mu.Lock()
	defer live.mu.Unlock()

	qs := live.questions()
	q, known := qs.Question(req.QuestionID)
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not in session"})
		return
	}
	if !q.ValidOption(*req.Option) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "option out of range"})
		return
	}

	var (
		rev     quiz.Reveal
		created bool
	)
	if live.exam != nil {
		var err error
		rev, created, err = live.exam.Answer(req.QuestionID, *req.Option, now)
		if errors.Is(err, exam.ErrFinished) {
			h.record(c.Request.Context(), live)
			c.JSON(http.StatusConflict, gin.H{"error": "exam has finished", "session": live.view(now)})
			return
		}
	} else {
		rev, created = qs.SelectAnswer(req.QuestionID, *req.Option)
	}

	if h.finished(live) {
		h.record(c.Request.Context(), live)
	}

	c.JSON(http.StatusOK, answerResponse{
		Reveal:   rev,
		Accepted: created,
		Session:  live.view(now),
	})
}

// FinishSession ends an exam early. Unanswered questions count as wrong.
func (h *Handler) FinishSession(c *gin.Context) {
	live, ok := h.lookup(c)
	if !ok {
		return
	}
	now := h.now()

	live.mu.Lock()
	defer live.mu.Unlock()
	if live.exam == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "only exams can be finished early"})
		return
	}
	live.exam.Finish(now)
	h.record(c.Request.Context(), live)
	c.JSON(http.StatusOK, live.view(now))
}

func (h *Handler) AnswerCheck(c *gin.Context) {
	var req CheckAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	ref, err := h.catalog.Check(c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	check, err := quiz.NewCheck(ref.Question)
	if err != nil {
		h.internalError(c, "load check", err)
		return
	}
	rev, ok := check.Select(*req.Option)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "option out of range"})
		return
	}

	recorded := true
	if _, err := h.recorder.RecordCheck(c.Request.Context(), c.GetString(learnerKey), ref.SectionID, rev); err != nil {
		recorded = false
	}
	c.JSON(http.StatusOK, checkResponse{Reveal: rev, SectionID: ref.SectionID, Recorded: recorded})
}

func (h *Handler) ListAttempts(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	kind := store.AttemptKind(c.Query("kind"))
	switch kind {
	case "", store.KindQuiz, store.KindExam, store.KindCheck:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be quiz, exam or check"})
		return
	}

	attempts, err := h.recorder.History(c.Request.Context(), c.GetString(learnerKey), kind, limit)
	if err != nil {
		h.internalError(c, "list attempts", err)
		return
	}
	out := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptView(a))
	}
	c.JSON(http.StatusOK, gin.H{"attempts": out})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.recorder.Stats(c.Request.Context(), c.GetString(learnerKey))
	if err != nil {
		h.internalError(c, "load stats", err)
		return
	}
	out := make([]unitStatsView, 0, len(stats))
	for _, s := range stats {
		out = append(out, unitStatsView(s))
	}
	c.JSON(http.StatusOK, gin.H{"units": out})
}

func (h *Handler) lookup(c *gin.Context) (*liveSession, bool) {
	live, err := h.sessions.get(c.Param("id"), c.GetString(learnerKey), h.now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return live, true
}

func (h *Handler) finished(live *liveSession) bool {
	if live.exam != nil {
		return live.exam.Finished()
	}
	return live.quiz.IsComplete()
}

// record stores a finished session once. Callers hold live.mu. Failures
// are logged by the recorder and leave the session unrecorded; the next
// GetSession or SubmitAnswer on it tries again.
func (h *Handler) record(ctx context.Context, live *liveSession) {
	if live.attemptID != "" {
		return
	}
	var (
		rec store.AttemptRecord
		err error
	)
	if live.exam != nil {
		rec, err = h.recorder.RecordExam(ctx, live.Learner, live.exam)
	} else {
		rec, err = h.recorder.RecordQuiz(ctx, live.Learner, live.UnitCode, live.Title, live.quiz)
	}
	if err != nil {
		return
	}
	live.attemptID = rec.AttemptID
}

func (h *Handler) notFound(c *gin.Context, err error) {
	if errors.Is(err, course.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.internalError(c, "lookup", err)
}

func (h *Handler) internalError(c *gin.Context, action string, err error) {
	h.log.Error(action+" failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   action + " failed",
		"details": err.Error(),
	})
}
