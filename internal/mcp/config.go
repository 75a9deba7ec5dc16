package mcp

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	defaultConfigPath        = ".storefront.json"
	defaultSearchResultLimit = 5
)

// Config represents the complete storefront server configuration
type Config struct {
	Settings Settings `json:"settings"`
}

// Settings represents storefront search settings
type Settings struct {
	SearchResultLimit int    `json:"searchResultLimit"` // Number of products to return per search (default: 5)
	CatalogPath       string `json:"catalogPath"`       // JSON catalog file (default: built-in seed catalog)
}

// loadConfig loads the .storefront.json configuration file
func (s *StorefrontServer) loadConfig() (*Config, error) {
	configPath := os.Getenv("STOREFRONT_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	s.logger.Info("Looking for config", "path", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("No config found, using defaults", "path", configPath)
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	s.logger.Info("Found config", "path", configPath, "size_bytes", len(data))

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}
