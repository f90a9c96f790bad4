package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/store"
)

// ErrSessionNotFound is returned for unknown, expired or foreign sessions.
var ErrSessionNotFound = errors.New("session not found")

// liveSession is a quiz or exam in progress for one learner.
type liveSession struct {
	mu sync.Mutex

	ID       string
	Learner  string
	Kind     store.AttemptKind
	UnitCode string
	Title    string

	quiz *quiz.Session // set for section quizzes
	exam *exam.Exam    // set for mock exams

	// attemptID is set once the finished session has been recorded.
	attemptID string
	expires   time.Time
}

func (s *liveSession) questions() *quiz.Session {
	if s.exam != nil {
		return s.exam.Session()
	}
	return s.quiz
}

// sessionCache holds live sessions with sliding TTL expiry.
type sessionCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*liveSession
}

func newSessionCache(ttl time.Duration) *sessionCache {
	return &sessionCache{ttl: ttl, sessions: make(map[string]*liveSession)}
}

func (c *sessionCache) put(s *liveSession, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.expires = now.Add(c.ttl)
	c.sessions[s.ID] = s
}

// get returns the session if it exists, belongs to learner and has not
// expired. A hit extends the session's lifetime.
func (c *sessionCache) get(id, learner string, now time.Time) (*liveSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[id]
	if !ok || s.Learner != learner {
		return nil, ErrSessionNotFound
	}
	if !now.Before(s.expires) {
		delete(c.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.expires = now.Add(c.ttl)
	return s, nil
}

// sweep drops expired sessions and returns how many were removed.
func (c *sessionCache) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, s := range c.sessions {
		if !now.Before(s.expires) {
			delete(c.sessions, id)
			n++
		}
	}
	return n
}

func (c *sessionCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// janitor sweeps the cache every interval until ctx is done.
func (c *sessionCache) janitor(ctx context.Context, interval time.Duration, now func() time.Time, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.sweep(now()); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
