// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/pool"
	"github.com/ntbapp/ntb-server/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Game   GameConfig
	Server ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates the Lahman CSV tables.
type DataConfig struct {
	// Dir is the directory containing People.csv, Batting.csv, etc.
	Dir string
}

// GameConfig holds the difficulty filters and round policy.
type GameConfig struct {
	Mode     string // batting, pitching, or both
	MinYears int
	MinPA    int
	MinIP    int
	EraStart int // 0 leaves the bound open
	EraEnd   int
	// CategoryPolicy decides the table for two-way players under mode
	// "both": "stronger" or "random".
	CategoryPolicy string
	// OutputDir is where the CLI writes round images.
	OutputDir string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// SessionIdleTimeout is how long an untouched game session survives.
	SessionIdleTimeout time.Duration
	// GuessRPS and GuessBurst bound guess submissions per session.
	GuessRPS   float64
	GuessBurst int
}

// Filter returns the game settings as an eligibility filter.
func (c *Config) Filter() pool.Filter {
	return pool.Filter{
		Mode:     domain.Mode(c.Game.Mode),
		MinYears: c.Game.MinYears,
		MinPA:    c.Game.MinPA,
		MinIP:    c.Game.MinIP,
		Era:      pool.Era{Start: c.Game.EraStart, End: c.Game.EraEnd},
	}
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	dataDir := flag.String("data-dir", "", "Directory containing the Lahman CSV tables (required)")
	outputDir := flag.String("output-dir", "", "Directory for rendered images (default: ./output)")

	mode := flag.String("mode", "", "Game mode: batting, pitching, or both (default: batting)")
	minYears := flag.String("min-years", "", "Minimum distinct seasons to qualify (default: 5)")
	minPA := flag.String("min-pa", "", "Minimum career at-bats for batters (default: 1500)")
	minIP := flag.String("min-ip", "", "Minimum career innings pitched for pitchers (default: 1000)")
	era := flag.String("era", "", "Debut year range as START-END, e.g. 1950-2000")
	categoryPolicy := flag.String("category-policy", "", "Two-way player table choice: stronger or random (default: stronger)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	sessionIdle := flag.String("session-idle-timeout", "", "Idle game session lifetime (default: 2h)")
	guessRPS := flag.String("guess-rps", "", "Guess submissions allowed per second per session (default: 5)")
	guessBurst := flag.String("guess-burst", "", "Guess submission burst per session (default: 10)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Dir: getConfigValue(*dataDir, "DATA_DIR", ""),
		},
		Game: GameConfig{
			Mode:           getConfigValue(*mode, "GAME_MODE", "batting"),
			MinYears:       getIntConfigValue(*minYears, "GAME_MIN_YEARS", 5),
			MinPA:          getIntConfigValue(*minPA, "GAME_MIN_PA", 1500),
			MinIP:          getIntConfigValue(*minIP, "GAME_MIN_IP", 1000),
			CategoryPolicy: getConfigValue(*categoryPolicy, "GAME_CATEGORY_POLICY", "stronger"),
			OutputDir:      getConfigValue(*outputDir, "OUTPUT_DIR", "./output"),
		},
		Server: ServerConfig{
			Port:       getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			GuessRPS:   getFloatConfigValue(*guessRPS, "GUESS_RPS", 5),
			GuessBurst: getIntConfigValue(*guessBurst, "GUESS_BURST", 10),
		},
	}

	eraStr := getConfigValue(*era, "GAME_ERA", "")
	start, end, err := parseEra(eraStr)
	if err != nil {
		return nil, err
	}
	cfg.Game.EraStart, cfg.Game.EraEnd = start, end

	// Parse server timeouts.
	cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}
	cfg.Server.SessionIdleTimeout, err = parseDurationValue(*sessionIdle, "SESSION_IDLE_TIMEOUT", "2h")
	if err != nil {
		return nil, err
	}

	// Expand and validate paths.
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Dir == "" {
		return errors.New("data directory is required (--data-dir or DATA_DIR)")
	}

	if p := c.Game.CategoryPolicy; p != "stronger" && p != "random" {
		return fmt.Errorf("invalid category policy: %s (must be stronger or random)", p)
	}

	// The filter surface carries its own validation tags.
	if err := validation.New().Validate(c.Filter()); err != nil {
		return err
	}

	return nil
}

// parseEra splits a "START-END" range. Empty input leaves both bounds
// open.
func parseEra(s string) (start, end int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid era %q: expected START-END, e.g. 1950-2000", s)
	}
	if _, err := fmt.Sscanf(parts[0], "%d", &start); err != nil {
		return 0, 0, fmt.Errorf("invalid era start %q: %w", parts[0], err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &end); err != nil {
		return 0, 0, fmt.Errorf("invalid era end %q: %w", parts[1], err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("invalid era %q: end before start", s)
	}
	return start, end, nil
}

func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), s, err)
	}
	return d, nil
}

// expandPaths expands ~ and makes the data and output paths absolute.
func (c *Config) expandPaths() error {
	if c.Data.Dir != "" {
		expanded, err := expandPath(c.Data.Dir, "")
		if err != nil {
			return fmt.Errorf("invalid data directory: %w", err)
		}
		c.Data.Dir = expanded
	}

	expanded, err := expandPath(c.Game.OutputDir, "./output")
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	c.Game.OutputDir = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
