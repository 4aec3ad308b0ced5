package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterviewer/mock-interviewer/internal/models"
)

func TestLoad_EmbeddedBank(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	all := c.All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, q := range all {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		assert.Greater(t, q.MaxScore, 0.0)

		got, ok := c.ByID(q.ID)
		require.True(t, ok)
		assert.Equal(t, q.ID, got.ID)
	}

	assert.Equal(t, "q_sumifs_east_pencil", c.IDs()[0])
}

func TestLoad_EmbeddedBankCoversEveryKind(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	kinds := make(map[models.QuestionKind]bool)
	tiers := make(map[models.Difficulty]bool)
	for _, q := range c.All() {
		kinds[q.Kind] = true
		tiers[q.Difficulty] = true
	}

	assert.Len(t, kinds, 4)
	assert.Len(t, tiers, 3)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := []byte(`questions:
  - id: q1
    prompt: Sum it
    kind: formula
    skill: aggregation
    difficulty: E
    max_score: 3
    accepted:
      - pattern: '=\s*SUM\('
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	q, ok := c.ByID("q1")
	require.True(t, ok)
	assert.Equal(t, models.KindFormula, q.Kind)
	assert.Equal(t, 3.0, q.MaxScore)
	require.Len(t, q.Accepted, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsInvalidQuestions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "empty bank",
			yaml: "questions: []\n",
		},
		{
			name: "zero max score",
			yaml: `questions:
  - {id: q1, prompt: p, kind: value, skill: s, difficulty: E, max_score: 0}
`,
		},
		{
			name: "unknown kind",
			yaml: `questions:
  - {id: q1, prompt: p, kind: chart, skill: s, difficulty: E, max_score: 5}
`,
		},
		{
			name: "unknown difficulty",
			yaml: `questions:
  - {id: q1, prompt: p, kind: value, skill: s, difficulty: X, max_score: 5}
`,
		},
		{
			name: "duplicate id",
			yaml: `questions:
  - {id: q1, prompt: p, kind: value, skill: s, difficulty: E, max_score: 5}
  - {id: q1, prompt: p, kind: text, skill: s, difficulty: M, max_score: 5}
`,
		},
		{
			name: "bad pattern",
			yaml: `questions:
  - id: q1
    prompt: p
    kind: formula
    skill: s
    difficulty: E
    max_score: 5
    accepted:
      - pattern: '=SUM('
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	c, err := New([]models.Question{
		{ID: "a", Prompt: "p", Kind: models.KindValue, Skill: "s", Difficulty: models.DifficultyEasy, MaxScore: 5},
	})
	require.NoError(t, err)

	all := c.All()
	all[0].ID = "mutated"

	_, ok := c.ByID("a")
	assert.True(t, ok)
	assert.Equal(t, "a", c.All()[0].ID)
}
