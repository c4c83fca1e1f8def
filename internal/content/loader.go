package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed sample_content.json
var sampleContent []byte

const schemaURL = "schema://twotor-content.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

type document struct {
	Users   []User   `json:"users"`
	Courses []Course `json:"courses"`
}

// LoadFile reads and validates a content document from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(raw)
}

// Sample returns the catalog built from the bundled demo content.
func Sample() (*Catalog, error) {
	return Parse(sampleContent)
}

// Parse validates raw JSON against the content schema and builds a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid content JSON: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("content schema validation failed: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := checkAnswerKeys(doc.Courses); err != nil {
		return nil, err
	}
	return NewCatalog(doc.Users, doc.Courses), nil
}

// checkAnswerKeys rejects questions whose answer key points past their choices.
func checkAnswerKeys(courses []Course) error {
	for _, c := range courses {
		for _, m := range c.Modules {
			for _, q := range m.Quizzes {
				for _, qu := range q.Questions {
					if qu.CorrectChoice >= len(qu.Choices) {
						return fmt.Errorf("quiz %q question %q: correct_choice %d out of range (%d choices)",
							q.ID, qu.ID, qu.CorrectChoice, len(qu.Choices))
					}
				}
			}
		}
	}
	return nil
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// Round-trip so the compiler sees plain JSON values.
		defBytes, err := json.Marshal(contentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal content schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse content schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile content schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}
