package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	RawFileDir string
	OutputDir  string

	DefaultProfile string
	// ProfileOverrides maps a normalized supplier comment to a profile name.
	ProfileOverrides map[string]string

	DefaultCategory    string
	UseDefaultCategory bool
	Currency           string

	ScanHistoryLimit int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawFileDir: getEnv("RAW_FILE_DIR", filepath.Join(cwd, "data", "raw")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DefaultProfile:   getEnv("DATANORM_DEFAULT_PROFILE", "datanorm4"),
		ProfileOverrides: parseOverrides(getEnv("DATANORM_PROFILE_OVERRIDES", "")),

		DefaultCategory:    getEnv("DEFAULT_CATEGORY", "Fallback Category"),
		UseDefaultCategory: getEnvBool("USE_DEFAULT_CATEGORY", false),
		Currency:           getEnv("CURRENCY", "EUR"),

		ScanHistoryLimit: getEnvInt("SCAN_HISTORY_LIMIT", 20),
	}

	return cfg, nil
}

// parseOverrides reads "comment=profile;comment=profile" pairs. Comments
// are matched after normalization, so case and spacing do not matter.
func parseOverrides(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
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

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
