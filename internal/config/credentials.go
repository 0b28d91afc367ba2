package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expenserule/expenserule/internal/common"
)

const apiKeyFileName = "openai_api_key"

// APIKeyPath returns the location of the stored API key file.
func APIKeyPath(dataDir string) string {
	return filepath.Join(dataDir, apiKeyFileName)
}

// SaveAPIKey writes the API key to disk with owner-only permissions.
func SaveAPIKey(dataDir, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: API key is empty", common.ErrInvalidConfig)
	}
	if err := EnsureDataDirs(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(APIKeyPath(dataDir), []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write API key: %w", err)
	}
	return nil
}

// LoadAPIKey reads the stored API key. Returns common.ErrMissingAPIKey when
// no key has been configured yet.
func LoadAPIKey(dataDir string) (string, error) {
	data, err := os.ReadFile(APIKeyPath(dataDir))
	if os.IsNotExist(err) {
		return "", common.ErrMissingAPIKey
	}
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", common.ErrMissingAPIKey
	}
	return key, nil
}

// HasAPIKey reports whether an API key has been configured.
func HasAPIKey(dataDir string) bool {
	_, err := LoadAPIKey(dataDir)
	return err == nil
}
