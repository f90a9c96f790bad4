package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttempt is one scored section quiz, mock exam or inline check.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			Unique().
			NotEmpty().
			Comment("UUID shared with the attempt's answer rows"),
		field.String("learner").
			NotEmpty(),
		field.String("unit_code").
			NotEmpty().
			Comment("Section unit code, exam ID or check ID"),
		field.String("kind").
			NotEmpty().
			Comment("quiz, exam or check"),
		field.String("title").
			Default(""),
		field.Int("score").
			Comment("Correct answers"),
		field.Int("total_questions"),
		field.Int("percentage").
			Comment("Rounded half up, 0 to 100"),
		field.Bool("passed").
			Default(false),
		field.Bool("expired").
			Default(false).
			Comment("Exam deadline passed before hand-in"),
		field.Int64("time_taken_ms"),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner", "unit_code"),
		index.Fields("timestamp"),
	}
}
