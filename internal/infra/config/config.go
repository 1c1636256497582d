package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries all environment-driven settings for the service.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AIPipeURL    string
	AIPipeAPIKey string
	ChatModel    string

	EmbeddingModel string

	OCRURL     string
	OCRTimeout int // seconds

	LLMTimeout      int // seconds
	CourseName      string
	ExpansionCount  int
	SearchK         int
	RRFK            float64
	AnswerMaxTokens int

	DiscourseBaseURL     string
	DiscourseCategoryURL string
	DiscourseSession     string
	DiscourseToken       string
}

// Load reads the configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "vta-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "vta_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "vta_password"),
		DBName:     getEnv("DB_NAME", "vta_db"),

		AIPipeURL:    getEnv("AIPIPE_URL", "https://aipipe.org/openai/v1"),
		AIPipeAPIKey: getSecret("AIPIPE_API_KEY", "AIPIPE_API_KEY_FILE", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-3.5-turbo"),

		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),

		OCRURL:     getEnv("OCR_URL", "http://ocr-service:8085"),
		OCRTimeout: getEnvInt("OCR_TIMEOUT", 30),

		LLMTimeout:      getEnvInt("LLM_TIMEOUT", 120),
		CourseName:      getEnv("COURSE_NAME", "Tools for Data Science (TDS)"),
		ExpansionCount:  getEnvInt("QUERY_EXPANSION_COUNT", 5),
		SearchK:         getEnvInt("SEARCH_K", 5),
		RRFK:            getEnvFloat("RRF_K", 60.0),
		AnswerMaxTokens: getEnvInt("ANSWER_MAX_TOKENS", 512),

		DiscourseBaseURL:     getEnv("DISCOURSE_BASE_URL", "https://discourse.onlinedegree.iitm.ac.in"),
		DiscourseCategoryURL: getEnv("DISCOURSE_CATEGORY_URL", "/c/courses/tds-kb/34"),
		DiscourseSession:     getSecret("DISCOURSE_SESSION", "DISCOURSE_SESSION_FILE", ""),
		DiscourseToken:       getSecret("DISCOURSE_TOKEN", "DISCOURSE_TOKEN_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
