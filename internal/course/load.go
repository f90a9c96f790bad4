package course

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the content schema major version this build understands.
const SupportedMajor = "v1"

const schemaURL = "schema://course.schema.json"

//go:embed content/*.json
var embedded embed.FS

//go:embed schema/course.schema.json
var schemaJSON []byte

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the catalog built from the embedded course content.
// Panics if the embedded content is invalid, since that is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("course: embedded content invalid: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Embedded returns the built-in course documents.
func Embedded() fs.FS { return embedded }

// LoadDir loads every *.json course document under dir.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads every *.json document in fsys (recursively), validates each
// against the course schema, and builds a catalog.
func Load(fsys fs.FS) (*Catalog, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".json" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no course documents found")
	}
	sort.Strings(files)

	courses := make([]Course, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		co, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		courses = append(courses, co)
	}

	return NewCatalog(courses)
}

// Parse validates a single course document and decodes it.
func Parse(data []byte) (Course, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Course{}, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := courseSchema()
	if err != nil {
		return Course{}, err
	}
	if err := sch.Validate(parsed); err != nil {
		return Course{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var co Course
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&co); err != nil {
		return Course{}, fmt.Errorf("decode course: %w", err)
	}

	if err := checkSchemaVersion(co.SchemaVersion); err != nil {
		return Course{}, fmt.Errorf("course %q: %w", co.ID, err)
	}
	return co, nil
}

func checkSchemaVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("schemaVersion %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("schemaVersion %s unsupported (major %s, want %s)", v, major, SupportedMajor)
	}
	return nil
}

func courseSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse course schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile course schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}
