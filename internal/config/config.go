package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Interview InterviewConfig
	LLM       LLMConfig
	Qdrant    QdrantConfig
	Worker    WorkerConfig
	Ingest    IngestConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type InterviewConfig struct {
	MaxQuestions     int
	HintPenalty      float64
	QuestionBankPath string
	WriteTimeout     time.Duration
}

type LLMConfig struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	Timeout        time.Duration
	MaxRetries     int
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type WorkerConfig struct {
	Concurrency       int
	QueueSize         int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

type IngestConfig struct {
	ReferenceDocsDir string
	ChunkSize        int
	ChunkOverlap     int
	Concurrency      int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", true),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "mock_interviewer"),
		},
		Interview: InterviewConfig{
			MaxQuestions:     getEnvAsInt("MAX_QUESTIONS", 6),
			HintPenalty:      getEnvAsFloat("HINT_PENALTY", 0.5),
			QuestionBankPath: getEnv("QUESTION_BANK_PATH", ""),
			WriteTimeout:     getEnvAsDuration("DB_WRITE_TIMEOUT", "5s"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(getEnv("LLM_PROVIDER", "")),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", "30s"),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 3),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "excel_reference_guides"),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 2),
			QueueSize:         getEnvAsInt("WORKER_QUEUE_SIZE", 100),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
		Ingest: IngestConfig{
			ReferenceDocsDir: getEnv("REFERENCE_DOCS_DIR", "./reference_docs"),
			ChunkSize:        getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:     getEnvAsInt("CHUNK_OVERLAP", 200),
			Concurrency:      getEnvAsInt("INGEST_CONCURRENCY", 4),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// RAGEnabled reports whether reference guides can be retrieved for rubric grading.
func (c *Config) RAGEnabled() bool {
	return c.Qdrant.URL != "" && c.LLM.GeminiAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
