package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/progress"
)

// Deps is what screens need to browse content and record results.
type Deps struct {
	Catalog  *course.Catalog
	Recorder *progress.Recorder
	Learner  string
	Log      *zap.Logger
	Now      func() time.Time
}

// WithLearner returns a copy of d for another learner.
func (d Deps) WithLearner(name string) Deps {
	d.Learner = name
	return d
}

// Clock returns d.Now, defaulting to time.Now.
func (d Deps) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Logger returns d.Log, defaulting to a no-op logger.
func (d Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
