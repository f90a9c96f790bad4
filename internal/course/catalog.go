package course

import (
	"fmt"
	"slices"
	"sort"
)

// Catalog holds the loaded courses with precomputed lookup indices.
type Catalog struct {
	courses  []Course
	byID     map[string]int
	sections map[string]SectionRef
	checks   map[string]CheckRef
	exams    map[string]Exam
	examIDs  []string
}

// NewCatalog validates the courses and builds the lookup indices.
func NewCatalog(courses []Course) (*Catalog, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	return buildCatalog(courses), nil
}

func buildCatalog(courses []Course) *Catalog {
	sorted := slices.Clone(courses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Catalog{
		courses:  sorted,
		byID:     make(map[string]int, len(sorted)),
		sections: make(map[string]SectionRef),
		checks:   make(map[string]CheckRef),
		exams:    make(map[string]Exam),
	}

	for i, co := range c.courses {
		c.byID[co.ID] = i
		for _, m := range co.Modules {
			for _, s := range m.Sections {
				c.sections[s.ID] = SectionRef{
					CourseID:    co.ID,
					CourseTitle: co.Title,
					ModuleID:    m.ID,
					ModuleTitle: m.Title,
					Section:     s,
				}
				for _, q := range s.Checks {
					c.checks[q.ID] = CheckRef{SectionID: s.ID, Question: q}
				}
			}
		}
		for _, e := range co.Exams {
			c.exams[e.ID] = e
			c.examIDs = append(c.examIDs, e.ID)
		}
	}
	return c
}

// Courses returns all courses ordered by ID.
func (c *Catalog) Courses() []Course {
	return slices.Clone(c.courses)
}

// Course returns a course by ID.
func (c *Catalog) Course(id string) (Course, error) {
	i, ok := c.byID[id]
	if !ok {
		return Course{}, fmt.Errorf("course %q: %w", id, ErrNotFound)
	}
	return c.courses[i], nil
}

// Section returns a section and its location by section ID.
func (c *Catalog) Section(id string) (SectionRef, error) {
	ref, ok := c.sections[id]
	if !ok {
		return SectionRef{}, fmt.Errorf("section %q: %w", id, ErrNotFound)
	}
	return ref, nil
}

// Sections returns every section in course, module, reading order.
func (c *Catalog) Sections() []SectionRef {
	var out []SectionRef
	for _, co := range c.courses {
		for _, m := range co.Modules {
			for _, s := range m.Sections {
				out = append(out, c.sections[s.ID])
			}
		}
	}
	return out
}

// Check returns an inline knowledge check by question ID.
func (c *Catalog) Check(id string) (CheckRef, error) {
	ref, ok := c.checks[id]
	if !ok {
		return CheckRef{}, fmt.Errorf("check %q: %w", id, ErrNotFound)
	}
	return ref, nil
}

// Exam returns a mock exam by ID.
func (c *Catalog) Exam(id string) (Exam, error) {
	e, ok := c.exams[id]
	if !ok {
		return Exam{}, fmt.Errorf("exam %q: %w", id, ErrNotFound)
	}
	return e, nil
}

// Exams returns all mock exams in course order.
func (c *Catalog) Exams() []Exam {
	out := make([]Exam, 0, len(c.examIDs))
	for _, id := range c.examIDs {
		out = append(out, c.exams[id])
	}
	return out
}

// Validate re-runs the structural checks over the catalog's courses.
func (c *Catalog) Validate() error {
	return validateCourses(c.courses)
}
