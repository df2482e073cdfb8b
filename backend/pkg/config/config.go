package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"lexigraph/backend/internal/constants"
	apperrors "lexigraph/backend/pkg/errors"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	Neo4j Neo4jConfig

	// Discord
	DiscordBotToken string
	CommandPrefix   string
}

// Neo4jConfig is everything needed to open an authenticated graph connection.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

var supportedSchemes = map[string]bool{
	"neo4j":     true,
	"neo4j+s":   true,
	"neo4j+ssc": true,
	"bolt":      true,
	"bolt+s":    true,
	"bolt+ssc":  true,
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		Neo4j:           LoadNeo4j(),
		DiscordBotToken: getEnv("DISCORD_BOT_TOKEN", ""),
		CommandPrefix:   getEnv("COMMAND_PREFIX", constants.DefaultCommandPrefix),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadGraph reads only the graph connection settings, from the given env
// files (or .env when none are given) and the environment, and validates them.
func LoadGraph(envFiles ...string) (Neo4jConfig, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Neo4jConfig{}, apperrors.NewConfigValidationFailed("env file", err.Error())
	}

	cfg := LoadNeo4j()
	if err := cfg.Validate(); err != nil {
		return Neo4jConfig{}, err
	}
	return cfg, nil
}

// LoadNeo4j reads the graph connection settings. The URI and credentials
// have no defaults; only the logical database falls back to "neo4j".
func LoadNeo4j() Neo4jConfig {
	return Neo4jConfig{
		URI:      strings.TrimSpace(os.Getenv("NEO4J_URI")),
		User:     os.Getenv("NEO4J_USER"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: getEnv("NEO4J_DATABASE", constants.DefaultDatabase),
	}
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if err := c.Neo4j.Validate(); err != nil {
		return err
	}
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	// Discord token is only required by the bot, which checks it itself
	return nil
}

// Validate rejects missing or malformed connection settings so that no
// network I/O is attempted with them.
func (c Neo4jConfig) Validate() error {
	if c.URI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.User == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Password == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	if c.Database == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_DATABASE")
	}

	parsed, err := url.Parse(c.URI)
	if err != nil {
		return apperrors.NewConfigValidationFailed("NEO4J_URI", err.Error())
	}
	if !supportedSchemes[parsed.Scheme] {
		return apperrors.NewConfigValidationFailed("NEO4J_URI", "unsupported scheme "+strconv.Quote(parsed.Scheme))
	}
	if parsed.Host == "" {
		return apperrors.NewConfigValidationFailed("NEO4J_URI", "host is empty")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
