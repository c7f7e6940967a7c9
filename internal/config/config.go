package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	OutputDir  string
	EditorCmd  string

	UploadTimeoutMs  int
	SaveClearDelayMs int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL: getEnv("API_BASE_URL", "https://text-to-structured-data.onrender.com"),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		EditorCmd:  getEnv("EDITOR", "vi"),

		UploadTimeoutMs:  getEnvInt("UPLOAD_TIMEOUT_MS", 60000),
		SaveClearDelayMs: getEnvInt("SAVE_CLEAR_DELAY_MS", 2000),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
