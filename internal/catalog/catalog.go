// Package catalog loads the immutable question bank the interview draws from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"excelinterviewer/mock-interviewer/internal/models"
)

//go:embed bank.yaml
var defaultBank []byte

// Catalog is the read-only, ordered question collection.
type Catalog interface {
	All() []models.Question
	ByID(id string) (models.Question, bool)
	IDs() []string
}

type bankFile struct {
	Questions []models.Question `yaml:"questions" validate:"required,min=1,dive"`
}

type catalog struct {
	questions []models.Question
	index     map[string]int
}

// Load reads the bank from path, or the embedded bank when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Parse(defaultBank)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Catalog, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	return New(file.Questions)
}

// New builds a catalog from questions in the given order. IDs must be unique,
// max scores positive and formula patterns valid regular expressions.
func New(questions []models.Question) (Catalog, error) {
	validate := validator.New()
	c := &catalog{
		questions: make([]models.Question, 0, len(questions)),
		index:     make(map[string]int, len(questions)),
	}

	for _, q := range questions {
		if err := validate.Struct(&q); err != nil {
			return nil, fmt.Errorf("invalid question %q: %w", q.ID, err)
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		for _, p := range q.Accepted {
			if _, err := regexp.Compile(p.Pattern); err != nil {
				return nil, fmt.Errorf("question %q has invalid pattern %q: %w", q.ID, p.Pattern, err)
			}
		}

		c.index[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c, nil
}

func (c *catalog) All() []models.Question {
	return append([]models.Question(nil), c.questions...)
}

func (c *catalog) ByID(id string) (models.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

func (c *catalog) IDs() []string {
	ids := make([]string, len(c.questions))
	for i, q := range c.questions {
		ids[i] = q.ID
	}
	return ids
}
