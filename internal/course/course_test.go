package course

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studycentre/internal/quiz"
)

func TestDefault_LoadsEmbeddedContent(t *testing.T) {
	cat := Default()

	courses := cat.Courses()
	require.Len(t, courses, 3)
	assert.Equal(t, "asbestos-awareness", courses[0].ID)
	assert.Equal(t, "coshh-awareness", courses[1].ID)
	assert.Equal(t, "fire-safety", courses[2].ID)

	require.NoError(t, cat.Validate())
}

func TestDefault_SectionLookup(t *testing.T) {
	ref, err := Default().Section("coshh-m1s1")
	require.NoError(t, err)

	assert.Equal(t, "coshh-awareness", ref.CourseID)
	assert.Equal(t, "coshh-m1", ref.ModuleID)
	assert.Equal(t, "coshh-m1s1", ref.UnitCode())
	assert.True(t, ref.Section.HasQuiz())
	assert.NotEmpty(t, ref.Section.Checks)
}

func TestDefault_CheckLookup(t *testing.T) {
	ref, err := Default().Section("coshh-m1s1")
	require.NoError(t, err)
	first := ref.Section.Checks[0]

	check, err := Default().Check(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "coshh-m1s1", check.SectionID)
	assert.Equal(t, first.CorrectIndex, check.Question.CorrectIndex)
}

func TestDefault_Exams(t *testing.T) {
	exams := Default().Exams()
	require.Len(t, exams, 2)

	e, err := Default().Exam("asbestos-awareness")
	require.NoError(t, err)
	assert.Equal(t, 20, e.TotalQuestions)
	assert.Equal(t, 80, e.PassThreshold)
	assert.Len(t, e.Categories, 5)
	assert.GreaterOrEqual(t, len(e.Bank), e.TotalQuestions)

	fire, err := Default().Exam("fire-safety")
	require.NoError(t, err)
	_, err = Default().Section(fire.ExitSection)
	assert.NoError(t, err, "exit section should resolve")
}

func TestCatalog_NotFound(t *testing.T) {
	cat := Default()

	_, err := cat.Course("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = cat.Section("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = cat.Check("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = cat.Exam("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalog_SectionsInReadingOrder(t *testing.T) {
	var ids []string
	for _, ref := range Default().Sections() {
		ids = append(ids, ref.Section.ID)
	}
	assert.Equal(t, []string{"coshh-m1s1", "coshh-m1s2", "fire-m1s1"}, ids)
}

func TestCatalog_CoursesReturnsCopy(t *testing.T) {
	cat := Default()
	courses := cat.Courses()
	courses[0].Title = "mutated"

	again := cat.Courses()
	assert.NotEqual(t, "mutated", again[0].Title)
}

const minimalDoc = `{
  "schemaVersion": "v1.2.0",
  "id": "demo",
  "title": "Demo",
  "modules": [{
    "id": "demo-m1",
    "title": "Module",
    "sections": [{
      "id": "demo-m1s1",
      "title": "Section",
      "checks": [{"id": "demo-c1", "question": "Q?", "options": ["a", "b"], "correctIndex": 1}],
      "quiz": {"questions": [{"id": "demo-q1", "question": "Q?", "options": ["a", "b"], "correctIndex": 0}]}
    }]
  }]
}`

func TestParse_Valid(t *testing.T) {
	co, err := Parse([]byte(minimalDoc))
	require.NoError(t, err)
	assert.Equal(t, "demo", co.ID)
	require.Len(t, co.Modules, 1)
	assert.Equal(t, 1, co.Modules[0].Sections[0].Checks[0].CorrectIndex)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{"not json", `{`, "invalid JSON"},
		{"missing title", `{"schemaVersion": "v1.0.0", "id": "x"}`, "schema validation failed"},
		{"unknown field", `{"schemaVersion": "v1.0.0", "id": "x", "title": "X", "extra": 1}`, "schema validation failed"},
		{"bad slug", `{"schemaVersion": "v1.0.0", "id": "Bad ID", "title": "X"}`, "schema validation failed"},
		{"major too new", `{"schemaVersion": "v2.0.0", "id": "x", "title": "X"}`, "unsupported"},
		{"one option", strings.Replace(minimalDoc, `["a", "b"], "correctIndex": 1`, `["a"], "correctIndex": 0`, 1), "schema validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}

func TestLoad_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"demo.json": {Data: []byte(minimalDoc)},
		"notes.txt": {Data: []byte("ignored")},
	}
	cat, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, cat.Courses(), 1)

	_, err = cat.Check("demo-c1")
	assert.NoError(t, err)
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.json"), []byte(minimalDoc), 0o644))

	cat, err := LoadDir(dir)
	require.NoError(t, err)
	_, err = cat.Section("demo-m1s1")
	assert.NoError(t, err)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func q(id string, correct int, category string) quiz.Question {
	return quiz.Question{ID: id, Prompt: "Q?", Options: []string{"a", "b", "c"}, CorrectIndex: correct, Category: category}
}

func TestNewCatalog_ReportsAllProblems(t *testing.T) {
	courses := []Course{
		{
			ID: "a", Title: "A",
			Modules: []Module{{
				ID: "a-m1", Title: "M",
				Sections: []Section{
					{ID: "s1", Title: "S", Checks: []quiz.Question{q("c1", 0, "")}},
					{ID: "s1", Title: "S dup", Checks: []quiz.Question{q("c1", 5, "")}},
				},
			}},
			Exams: []Exam{{
				ID: "e1", Title: "E", TotalQuestions: 5, PassThreshold: 120,
				Categories:  []string{"x", "y"},
				ExitSection: "nowhere",
				Bank:        []quiz.Question{q("b1", 0, "x"), q("b1", 0, "z")},
			}},
		},
		{ID: "a", Title: "A again"},
	}

	_, err := NewCatalog(courses)
	require.Error(t, err)
	msg := err.Error()

	for _, want := range []string{
		`duplicate course ID: "a"`,
		`duplicate section ID "s1"`,
		`duplicate check ID "c1"`,
		"correct index 5",
		`duplicate question ID "b1"`,
		"exceeds bank size",
		"passThreshold must be in [1, 100]",
		`undeclared category "z"`,
		`category "y" has no questions`,
		`exit section "nowhere" does not exist`,
	} {
		assert.Contains(t, msg, want)
	}
}
