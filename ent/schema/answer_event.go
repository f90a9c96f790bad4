package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records the learner's choice for one question of an attempt.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Comment("Links to QuizAttempt"),
		field.String("question_id").
			NotEmpty(),
		field.String("category").
			Default("").
			Comment("Exam bank category, empty for section quizzes"),
		field.Int("selected").
			Comment("Chosen option index"),
		field.Int("correct_index"),
		field.Bool("correct"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
		index.Fields("question_id"),
	}
}
