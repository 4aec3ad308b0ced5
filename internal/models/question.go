package models

type QuestionKind string

const (
	KindFormula QuestionKind = "formula"
	KindValue   QuestionKind = "value"
	KindTable   QuestionKind = "table"
	KindText    QuestionKind = "text"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "E"
	DifficultyMedium Difficulty = "M"
	DifficultyHard   Difficulty = "H"
)

// FormulaPattern is one accepted shape of a formula answer. Patterns are
// matched case-insensitively and the first match wins.
type FormulaPattern struct {
	Pattern   string  `yaml:"pattern" validate:"required"`
	Deduction float64 `yaml:"deduction" validate:"gte=0"`
	Note      string  `yaml:"note"`
}

type Question struct {
	ID         string           `yaml:"id" json:"id" validate:"required"`
	Prompt     string           `yaml:"prompt" json:"prompt" validate:"required"`
	Kind       QuestionKind     `yaml:"kind" json:"kind" validate:"required,oneof=formula value table text"`
	Skill      string           `yaml:"skill" json:"skill" validate:"required"`
	Difficulty Difficulty       `yaml:"difficulty" json:"difficulty" validate:"required,oneof=E M H"`
	MaxScore   float64          `yaml:"max_score" json:"max_score" validate:"gt=0"`
	Hint       string           `yaml:"hint" json:"-"`
	Rubric     []string         `yaml:"rubric" json:"-"`
	EvalKey    string           `yaml:"eval_key" json:"-"`
	Accepted   []FormulaPattern `yaml:"accepted" json:"-" validate:"dive"`
	Keywords   []string         `yaml:"keywords" json:"-"`
}
