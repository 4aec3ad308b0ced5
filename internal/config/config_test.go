package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAX_QUESTIONS", "")
	t.Setenv("HINT_PENALTY", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("QDRANT_URL", "")
	t.Setenv("DB_ENABLED", "")

	cfg := Load()

	assert.Equal(t, 6, cfg.Interview.MaxQuestions)
	assert.Equal(t, 0.5, cfg.Interview.HintPenalty)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Database.Enabled)
	assert.False(t, cfg.RAGEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MAX_QUESTIONS", "4")
	t.Setenv("HINT_PENALTY", "0.25")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("QDRANT_URL", "localhost:6334")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()

	assert.Equal(t, 4, cfg.Interview.MaxQuestions)
	assert.Equal(t, 0.25, cfg.Interview.HintPenalty)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.RAGEnabled())
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_QUESTIONS", "six")
	t.Setenv("HINT_PENALTY", "half")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("DB_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 6, cfg.Interview.MaxQuestions)
	assert.Equal(t, 0.5, cfg.Interview.HintPenalty)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Database.Enabled)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n"}}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
