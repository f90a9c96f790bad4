package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/studycentre/internal/store"
)

// Stats returns per-unit attempt statistics for learner, ordered by unit code.
// Inline checks are excluded.
func (r *Recorder) Stats(ctx context.Context, learner string) ([]store.UnitStats, error) {
	stats, err := r.repo.UnitStats(ctx, learner, "")
	if err != nil {
		return nil, fmt.Errorf("stats for %q: %w", learner, err)
	}
	return stats, nil
}

// History returns learner's most recent attempts, newest first. A limit of
// zero returns every attempt.
func (r *Recorder) History(ctx context.Context, learner string, kind store.AttemptKind, limit int) ([]store.AttemptRecord, error) {
	all, err := r.repo.QueryAttempts(ctx, store.QueryOpts{Learner: learner, Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("history for %q: %w", learner, err)
	}

	out := make([]store.AttemptRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Answers returns the per-question rows of one attempt.
func (r *Recorder) Answers(ctx context.Context, attemptID string) ([]store.AnswerRecord, error) {
	rows, err := r.repo.AnswersForAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("answers for %s: %w", attemptID, err)
	}
	return rows, nil
}

// Reset deletes learner's recorded progress. An empty learner clears all.
func (r *Recorder) Reset(ctx context.Context, learner string) (int, error) {
	n, err := r.repo.Reset(ctx, learner)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	return n, nil
}
