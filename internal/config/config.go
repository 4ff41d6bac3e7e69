package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"caselens-mcp/internal/narrative"
	"caselens-mcp/internal/scoring"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath    string
	LogDir      string
	DBDriver    string
	DBDSN       string
	RostersPath string
	Narrative   narrative.Options
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	dbDriver := getEnv("DB_DRIVER", "sqlite3")
	dbDSN := getEnv("DB_DSN", "")
	if dbDSN == "" && dbDriver == "sqlite3" {
		dbDSN = filepath.Join(dataPath, "caselens.db")
	}

	retries, _ := strconv.Atoi(getEnv("LLM_MAX_RETRIES", "3"))
	delaySecs, _ := strconv.Atoi(getEnv("LLM_RETRY_DELAY_SECONDS", "5"))

	cfg := &AppConfig{
		DataPath:    dataPath,
		LogDir:      logDir,
		DBDriver:    dbDriver,
		DBDSN:       dbDSN,
		RostersPath: getEnv("ROSTERS_PATH", ""),
		Narrative: narrative.Options{
			Provider:       getEnv("LLM_PROVIDER", narrative.ProviderArk),
			ArkURL:         getEnv("ARK_API_URL", ""),
			ArkAPIKey:      getEnv("ARK_API_KEY", ""),
			ArkModel:       getEnv("ARK_MODEL", "doubao-seed-1-8-251228"),
			AnthropicKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
			MaxRetries:     retries,
			RetryDelay:     time.Duration(delaySecs) * time.Second,
		},
	}

	return cfg, nil
}

// NarrativeConfigured reports whether the selected provider has the
// credentials it needs. Without them the server falls back to structured
// results only.
func (c *AppConfig) NarrativeConfigured() bool {
	switch c.Narrative.Provider {
	case narrative.ProviderAnthropic:
		return c.Narrative.AnthropicKey != ""
	default:
		return c.Narrative.ArkURL != "" && c.Narrative.ArkAPIKey != ""
	}
}

// LoadRosters reads the roster file when configured, falling back to the
// built-in roster set otherwise.
func (c *AppConfig) LoadRosters() (scoring.Rosters, error) {
	if c.RostersPath == "" {
		return scoring.DefaultRosters, nil
	}
	data, err := os.ReadFile(c.RostersPath)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	var rosters scoring.Rosters
	if err := yaml.Unmarshal(data, &rosters); err != nil {
		return nil, fmt.Errorf("parsing roster file %s: %w", c.RostersPath, err)
	}
	if len(rosters) == 0 {
		return nil, fmt.Errorf("roster file %s defines no categories", c.RostersPath)
	}
	log.Info().Str("path", c.RostersPath).Int("categories", len(rosters)).Msg("Rosters loaded")
	return rosters, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
