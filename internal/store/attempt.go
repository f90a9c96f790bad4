package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "learner", "unit_code", "kind",
	"title", "score", "total_questions", "percentage", "passed", "expired", "time_taken_ms",
}

var answerColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "question_id", "category",
	"selected", "correct_index", "correct",
}

type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, rec *AttemptRecord) error {
	if err := validateAttempt(rec); err != nil {
		return err
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	stampAttempt(rec, seq)
	return insertAttempt(ctx, r.drv, rec)
}

func (r *attemptRepo) AppendAnswer(ctx context.Context, rec *AnswerRecord) error {
	if err := validateAnswer(rec); err != nil {
		return err
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	stampAnswer(rec, seq)
	return insertAnswer(ctx, r.drv, rec)
}

func (r *attemptRepo) RecordAttempt(ctx context.Context, rec *AttemptRecord, answers []AnswerRecord) error {
	if err := validateAttempt(rec); err != nil {
		return err
	}
	for i := range answers {
		answers[i].AttemptID = rec.AttemptID
		if err := validateAnswer(&answers[i]); err != nil {
			return err
		}
	}

	// The counter uses its own connection, so claim the whole block before
	// the transaction takes the write lock.
	first, err := r.seq.Reserve(ctx, 1+len(answers))
	if err != nil {
		return err
	}
	stampAttempt(rec, first)
	for i := range answers {
		if answers[i].Timestamp.IsZero() {
			answers[i].Timestamp = rec.Timestamp
		}
		stampAnswer(&answers[i], first+1+int64(i))
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := insertAttempt(ctx, tx, rec); err != nil {
		tx.Rollback()
		return err
	}
	for i := range answers {
		if err := insertAnswer(ctx, tx, &answers[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

func validateAttempt(rec *AttemptRecord) error {
	if rec.AttemptID == "" {
		return fmt.Errorf("attempt: empty attempt ID")
	}
	return nil
}

func validateAnswer(rec *AnswerRecord) error {
	if rec.AttemptID == "" || rec.QuestionID == "" {
		return fmt.Errorf("answer: attempt and question IDs are required")
	}
	return nil
}

func stampAttempt(rec *AttemptRecord, seq int64) {
	rec.Sequence = seq
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()
}

func stampAnswer(rec *AnswerRecord, seq int64) {
	rec.Sequence = seq
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()
}

func insertAttempt(ctx context.Context, ex dialect.ExecQuerier, rec *AttemptRecord) error {
	query, args := builder().Insert(QuizAttemptsTable.Name).
		Columns(attemptColumns[1:]...).
		Values(
			rec.Sequence, rec.Timestamp, rec.AttemptID, rec.Learner, rec.UnitCode, string(rec.Kind),
			rec.Title, rec.Score, rec.TotalQuestions, rec.Percentage, rec.Passed, rec.Expired,
			rec.TimeTaken.Milliseconds(),
		).
		Query()

	var res sql.Result
	if err := ex.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	rec.ID = int(id)
	return nil
}

func insertAnswer(ctx context.Context, ex dialect.ExecQuerier, rec *AnswerRecord) error {
	query, args := builder().Insert(AnswerEventsTable.Name).
		Columns(answerColumns[1:]...).
		Values(
			rec.Sequence, rec.Timestamp, rec.AttemptID, rec.QuestionID, rec.Category,
			rec.Selected, rec.CorrectIndex, rec.Correct,
		).
		Query()

	var res sql.Result
	if err := ex.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	rec.ID = int(id)
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := builder().Select(attemptColumns...).From(entsql.Table(QuizAttemptsTable.Name))

	if opts.Learner != "" {
		sel.Where(entsql.EQ("learner", opts.Learner))
	}
	if opts.UnitCode != "" {
		sel.Where(entsql.EQ("unit_code", opts.UnitCode))
	}
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", string(opts.Kind)))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	sel.OrderBy("sequence")
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec    AttemptRecord
			kind   string
			tookMs int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.AttemptID, &rec.Learner, &rec.UnitCode, &kind,
			&rec.Title, &rec.Score, &rec.TotalQuestions, &rec.Percentage, &rec.Passed, &rec.Expired, &tookMs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Kind = AttemptKind(kind)
		rec.TimeTaken = time.Duration(tookMs) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) AnswersForAttempt(ctx context.Context, attemptID string) ([]AnswerRecord, error) {
	query, args := builder().Select(answerColumns...).
		From(entsql.Table(AnswerEventsTable.Name)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy("sequence").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.AttemptID, &rec.QuestionID, &rec.Category,
			&rec.Selected, &rec.CorrectIndex, &rec.Correct,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) UnitStats(ctx context.Context, learner, unitCode string) ([]UnitStats, error) {
	attempts, err := r.QueryAttempts(ctx, QueryOpts{Learner: learner, UnitCode: unitCode})
	if err != nil {
		return nil, fmt.Errorf("unit stats: %w", err)
	}

	byUnit := make(map[string]*UnitStats)
	for _, a := range attempts {
		// Inline checks are single questions, not units.
		if a.Kind == KindCheck {
			continue
		}
		st, ok := byUnit[a.UnitCode]
		if !ok {
			st = &UnitStats{UnitCode: a.UnitCode}
			byUnit[a.UnitCode] = st
		}
		st.Attempts++
		if a.Percentage > st.BestPercentage {
			st.BestPercentage = a.Percentage
		}
		// Attempts arrive in sequence order, so the last one wins.
		st.LastPercentage = a.Percentage
		st.LastAttempt = a.Timestamp
		st.Passed = st.Passed || a.Passed
	}

	out := make([]UnitStats, 0, len(byUnit))
	for _, st := range byUnit {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitCode < out[j].UnitCode })
	return out, nil
}

func (r *attemptRepo) Reset(ctx context.Context, learner string) (int, error) {
	answers := builder().Delete(AnswerEventsTable.Name)
	attempts := builder().Delete(QuizAttemptsTable.Name)
	if learner != "" {
		owned := builder().Select("attempt_id").
			From(entsql.Table(QuizAttemptsTable.Name)).
			Where(entsql.EQ("learner", learner))
		answers.Where(entsql.In("attempt_id", owned))
		attempts.Where(entsql.EQ("learner", learner))
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	query, args := answers.Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("delete answers: %w", err)
	}

	query, args = attempts.Query()
	var res sql.Result
	if err := tx.Exec(ctx, query, args, &res); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("delete attempts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reset: %w", err)
	}
	return int(n), nil
}
