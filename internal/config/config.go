package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	RegistryAPIURL   string
	RegistryAPIKey   string
	PublishedAfter   string
	RegistryPageSize int

	OpenAlexBaseURL       string
	InstitutionRORID      string
	OpenAlexInstitutionID string
	FromYear              int
	ToYear                int

	OutputPath    string
	HTTPTimeoutMs int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RegistryAPIURL:   getEnv("REGISTRY_API_URL", ""),
		RegistryAPIKey:   getEnv("REGISTRY_API_KEY", ""),
		PublishedAfter:   getEnv("REGISTRY_PUBLISHED_AFTER", "2023-12-31T00:00:00.000Z"),
		RegistryPageSize: getEnvInt("REGISTRY_PAGE_SIZE", 100),

		OpenAlexBaseURL:       getEnv("OPENALEX_BASE_URL", "https://api.openalex.org"),
		InstitutionRORID:      getEnv("OPENALEX_ROR_ID", ""),
		OpenAlexInstitutionID: getEnv("OPENALEX_INSTITUTION_ID", ""),
		FromYear:              getEnvInt("OPENALEX_FROM_YEAR", 2024),
		ToYear:                getEnvInt("OPENALEX_TO_YEAR", 2024),

		OutputPath:    getEnv("OUTPUT_PATH", filepath.Join(cwd, "out", "pubs_missing_in_registry.xlsx")),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 30000),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
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
