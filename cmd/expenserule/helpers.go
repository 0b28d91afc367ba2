package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/storage"
)

// dataDir returns the configured data directory with ~ expanded.
func dataDir() string {
	return config.ExpandPath(viper.GetString("data_dir"))
}

// openStorage opens the SQLite store under the data directory and applies
// pending migrations.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dir := dataDir()
	if err := config.EnsureDataDirs(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(config.DatabasePath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// llmConfig builds the LLM client configuration from viper. The API key is
// filled in separately by callers that need the remote tier.
func llmConfig() llm.Config {
	retryDelay, err := time.ParseDuration(viper.GetString("llm.retry_delay"))
	if err != nil {
		retryDelay = time.Second
	}
	return llm.Config{
		Provider:   viper.GetString("llm.provider"),
		Model:      viper.GetString("llm.model"),
		BaseURL:    viper.GetString("llm.base_url"),
		MaxRetries: viper.GetInt("llm.max_retries"),
		RetryDelay: retryDelay,
	}
}
