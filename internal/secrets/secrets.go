// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Dimensions API key. The key is read from the
// process environment after an optional .env file has been loaded, with a
// directory of plain-text key files as the fallback: in that directory the
// filename is the key name and the trimmed file contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// APIKeyEnv is the environment variable holding the Dimensions API key.
	APIKeyEnv = "DIMENSIONS_API_KEY"

	// APIKeyFile is the key file name looked up in the secrets directory.
	APIKeyFile = "dimensions-api-key"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment. Variables already set in the environment win. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey returns the Dimensions API key from the environment, falling back
// to the dimensions-api-key entry of loaded. It returns "" when neither is set.
func APIKey(loaded map[string]string) string {
	if v := strings.TrimSpace(os.Getenv(APIKeyEnv)); v != "" {
		return v
	}
	return loaded[APIKeyFile]
}
