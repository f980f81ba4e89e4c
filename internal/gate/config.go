package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rule names a class of build files and the tokens forbidden in them.
// Tokens and Mandated inherit the top-level values when empty.
type Rule struct {
	ID           string   `yaml:"id"`
	PathContains []string `yaml:"path_contains"`
	PathSuffix   string   `yaml:"path_suffix,omitempty"`
	Tokens       []string `yaml:"tokens,omitempty"`
	Mandated     string   `yaml:"mandated,omitempty"`
}

// Config is the full ruleset as loaded from YAML.
type Config struct {
	Mandated string   `yaml:"mandated"`
	Tokens   []string `yaml:"tokens"`
	Rules    []Rule   `yaml:"rules"`
}

// DefaultPath returns the default ruleset location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".writegate", "rules.yaml")
}

// LoadConfig loads a ruleset from a YAML file.
// Empty path falls back to ~/.writegate/rules.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg, _, err := loadConfig(path)
	return cfg, err
}

// Load loads a ruleset and compiles it into a Gate.
func Load(path string) (*Gate, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// LoadWithHash loads and compiles a ruleset and returns the SHA-256 hash of
// the raw YAML bytes on disk. When no file exists (defaults used), the hash
// is the SHA-256 of empty input.
func LoadWithHash(path string) (*Gate, string, error) {
	cfg, hash, err := loadConfig(path)
	if err != nil {
		return nil, "", err
	}
	g, err := New(cfg)
	if err != nil {
		return nil, "", err
	}
	return g, hash, nil
}

func loadConfig(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), emptyHash(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("failed to read ruleset: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse ruleset: %w", err)
	}

	// A file that sets only tokens or only mandated still inherits the
	// default rules; a file that sets rules replaces them wholesale.
	def := DefaultConfig()
	if cfg.Mandated == "" {
		cfg.Mandated = def.Mandated
	}
	if len(cfg.Tokens) == 0 {
		cfg.Tokens = def.Tokens
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = def.Rules
	}

	h := sha256.Sum256(data)
	return &cfg, "sha256:" + hex.EncodeToString(h[:]), nil
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return "sha256:" + hex.EncodeToString(h[:])
}
