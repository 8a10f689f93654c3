package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM     LLMConfig
	OCR     OCRConfig
	Store   StoreConfig
	Extract ExtractConfig
}

// LLMConfig holds oracle-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Pdftotext     string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	DSN       string // sqlite path or postgres URL
	OutputDir string // where e_<base>.json artifacts land
}

// ExtractConfig holds chunking/merge behavior
type ExtractConfig struct {
	ChunkParagraphs int    // paragraphs grouped per chunk
	ChunkMaxChars   int    // hard character ceiling per chunk
	MergePolicy     string // "last" | "first"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", ""),
			Tesseract:     getEnv("TESSERACT_BIN", ""),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		Store: StoreConfig{
			DSN:       getEnv("DB_URL", "propdoc.db"),
			OutputDir: getEnv("OUTPUT_DIR", "processed_files"),
		},
		Extract: ExtractConfig{
			ChunkParagraphs: getEnvAsInt("CHUNK_PARAGRAPHS", 3),
			ChunkMaxChars:   getEnvAsInt("CHUNK_MAX_CHARS", 4000),
			MergePolicy:     getEnv("MERGE_POLICY", "last"),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Extract.ChunkParagraphs <= 0 || c.Extract.ChunkMaxChars <= 0 {
		return NewAppError("CONFIG_ERROR", "chunk sizing must be positive", ErrInvalidInput)
	}
	if p := c.Extract.MergePolicy; p != "last" && p != "first" {
		return NewAppError("CONFIG_ERROR", `MERGE_POLICY must be "last" or "first"`, ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
