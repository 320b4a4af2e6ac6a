package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vaultenv/cipherlab/pkg/cipher"
	"github.com/vaultenv/cipherlab/pkg/encryption"
)

// CurrentVersion is the current version of the configuration format
const CurrentVersion = "1.0"

// DirName is the directory holding a project's cipherlab files
const DirName = ".cipherlab"

// Config represents the complete cipherlab configuration
type Config struct {
	Version  string         `yaml:"version"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Block    BlockConfig    `yaml:"block"`
	History  HistoryConfig  `yaml:"history"`
	Keyring  KeyringConfig  `yaml:"keyring"`
	UI       UIConfig       `yaml:"ui"`

	// dir is the directory relative paths resolve against, file the file
	// the config was read from
	dir  string
	file string
}

// DefaultsConfig holds values used when a flag is not given
type DefaultsConfig struct {
	Cipher       string `yaml:"cipher"`
	OutputFormat string `yaml:"output_format"` // "text", "json" or "yaml"
}

// BlockConfig configures the block cipher mode
type BlockConfig struct {
	Algorithm     string    `yaml:"algorithm"`
	KeyDerivation KDFConfig `yaml:"key_derivation"`
}

// KDFConfig holds key derivation function settings
type KDFConfig struct {
	Algorithm   string `yaml:"algorithm"` // only "argon2id"
	Iterations  int    `yaml:"iterations,omitempty"`
	Memory      int    `yaml:"memory,omitempty"` // KiB
	Parallelism int    `yaml:"parallelism,omitempty"`
}

// HistoryConfig controls the operation log
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"` // "memory" or "sqlite"
	Path    string `yaml:"path"`
	Limit   int    `yaml:"limit"` // 0 keeps everything
}

// KeyringConfig configures where named keys live
type KeyringConfig struct {
	Service  string   `yaml:"service"`
	Backends []string `yaml:"backends,omitempty"`
	FileDir  string   `yaml:"file_dir,omitempty"`
}

// UIConfig contains UI/UX preferences
type UIConfig struct {
	Color    bool `yaml:"color"`
	Emoji    bool `yaml:"emoji"`
	Progress bool `yaml:"progress"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Defaults: DefaultsConfig{
			Cipher:       cipher.Shift.String(),
			OutputFormat: "text",
		},
		Block: BlockConfig{
			Algorithm: encryption.DefaultAlgorithm,
			KeyDerivation: KDFConfig{
				Algorithm:   "argon2id",
				Iterations:  3,
				Memory:      64 * 1024, // 64MB
				Parallelism: 4,
			},
		},
		History: HistoryConfig{
			Enabled: true,
			Backend: "sqlite",
			Path:    "~/" + DirName + "/history.db",
			Limit:   1000,
		},
		Keyring: KeyringConfig{
			Service: "cipherlab",
			FileDir: "~/" + DirName + "/keyring",
		},
		UI: UIConfig{
			Color:    true,
			Emoji:    true,
			Progress: true,
		},
	}
}

// Load reads configuration from file system, walking up directory tree if needed
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		// If no config file exists, return default config
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error finding config file: %w", err)
	}

	return LoadFromFile(configPath)
}

// LoadFromFile reads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, err
	}

	// A config in <project>/.cipherlab/ resolves paths against <project>
	dir := filepath.Dir(path)
	if filepath.Base(dir) == DirName {
		dir = filepath.Dir(dir)
	}
	cfg.dir, _ = filepath.Abs(dir)
	cfg.file = path
	return cfg, nil
}

// LoadFromReader reads configuration from an io.Reader
func LoadFromReader(r io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(config); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Path is where Save writes in the current directory
func Path() string {
	return filepath.Join(DirName, "config.yaml")
}

// Save writes the configuration to the default location
func (c *Config) Save() error {
	return c.SaveToFile(Path())
}

// SaveToFile writes the configuration to a specific file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	return c.SaveToWriter(file)
}

// SaveToWriter writes the configuration to an io.Writer
func (c *Config) SaveToWriter(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}

	if _, err := cipher.ParseKind(c.Defaults.Cipher); err != nil {
		return fmt.Errorf("defaults.cipher: %w", err)
	}

	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[c.Defaults.OutputFormat] {
		return fmt.Errorf("defaults.output_format must be 'text', 'json', or 'yaml'")
	}

	if _, err := encryption.NewEncryptor(c.Block.Algorithm); err != nil {
		return fmt.Errorf("block.algorithm: %w", err)
	}

	if c.Block.KeyDerivation.Algorithm != "argon2id" {
		return fmt.Errorf("unsupported KDF algorithm: %s", c.Block.KeyDerivation.Algorithm)
	}
	if err := c.KDF().Validate(); err != nil {
		return fmt.Errorf("block.key_derivation: %w", err)
	}

	validBackends := map[string]bool{"memory": true, "sqlite": true}
	if !validBackends[c.History.Backend] {
		return fmt.Errorf("history backend must be 'memory' or 'sqlite'")
	}
	if c.History.Backend == "sqlite" && c.History.Path == "" {
		return fmt.Errorf("history.path is required for the sqlite backend")
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit cannot be negative")
	}

	if c.Keyring.Service == "" {
		return fmt.Errorf("keyring.service is required")
	}

	return nil
}

// KDF converts the key derivation settings for the encryption package
func (c *Config) KDF() encryption.KDF {
	k := c.Block.KeyDerivation
	return encryption.KDF{
		Iterations: uint32(max(k.Iterations, 0)),
		Memory:     uint32(max(k.Memory, 0)),
		Threads:    uint8(min(max(k.Parallelism, 0), 255)),
	}
}

// HistoryPath resolves History.Path: "~/" is the home directory, and a
// relative path is taken from the project the config was loaded from
func (c *Config) HistoryPath() (string, error) {
	return c.resolve(c.History.Path)
}

// KeyringDir resolves Keyring.FileDir the same way as HistoryPath
func (c *Config) KeyringDir() (string, error) {
	if c.Keyring.FileDir == "" {
		return "", nil
	}
	return c.resolve(c.Keyring.FileDir)
}

// File returns the file the config was loaded from, or "" for defaults
func (c *Config) File() string {
	return c.file
}

func (c *Config) resolve(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	if filepath.IsAbs(path) || c.dir == "" {
		return path, nil
	}
	return filepath.Join(c.dir, path), nil
}

// findConfigFile walks up the directory tree looking for .cipherlab/config.yaml
func findConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, DirName, "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
