package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the proposals tool.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string // console or json
	LogCalls  bool   // log every storage use case, not only failures
	PageSize  int
	// HistoryDocumentLimit is how many archived documents are kept per
	// proposal. 0 keeps all of them.
	HistoryDocumentLimit int
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	dbPath := filepath.Join(".proposals", "proposals.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".proposals", "proposals.db")
	}
	return Config{
		DBPath:               dbPath,
		LogLevel:             "info",
		LogFormat:            "console",
		LogCalls:             false,
		PageSize:             10,
		HistoryDocumentLimit: 0,
	}
}

// LoadConfig applies the given .env files (./.env when none are named) and
// then environment variables on top of the defaults. Variables already set in
// the environment win over .env values. Missing .env files are ignored;
// malformed values fall back to the default.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()

	if v := os.Getenv("PROPOSALS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PROPOSALS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.ToLower(os.Getenv("PROPOSALS_LOG_FORMAT")); v == "console" || v == "json" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("PROPOSALS_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("PROPOSALS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("PROPOSALS_HISTORY_DOCUMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HistoryDocumentLimit = n
		}
	}

	return cfg, nil
}
