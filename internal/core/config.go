package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "docaudit.yaml"

// defaultBackupDirName is the subfolder pre-mutation copies land in
// when the config does not override it.
const defaultBackupDirName = "bulk_found"

// Config represents the docaudit.yaml configuration file.
type Config struct {
	Classify ClassifyConfig `yaml:"classify"`
	Backup   BackupConfig   `yaml:"backup"`
}

// ClassifyConfig holds the link classifier token lists.
type ClassifyConfig struct {
	HubDomains []string `yaml:"hub_domains"`
	Keywords   []string `yaml:"keywords"`
}

// BackupConfig holds backup policy settings.
type BackupConfig struct {
	DirName string `yaml:"dir_name"`
}

// LoadConfig reads docaudit.yaml from the scan root. Returns zero
// Config and nil error if the file does not exist.
func LoadConfig(root string) (Config, error) {
	p := filepath.Join(root, configFileName)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configFileName, err)
	}
	return cfg, nil
}

// Classifier builds the link classifier from the config tokens.
func (c Config) Classifier() Classifier {
	return Classifier{
		HubDomains: c.Classify.HubDomains,
		Keywords:   c.Classify.Keywords,
	}
}

// BackupDirName returns the configured backup subfolder name.
func (c Config) BackupDirName() string {
	if c.Backup.DirName != "" {
		return c.Backup.DirName
	}
	return defaultBackupDirName
}
