package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load fills cfg from an optional YAML config file, an optional .env file,
// and the process environment, then applies defaults and merges the
// configured env file. Missing files are not errors; the zero Config is a
// valid starting point.
func Load(cfg *Config, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findConfigFile(lc.FileSystem)
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findEnvFile(lc.FileSystem)
	}

	v := viper.New()

	// 1. Load YAML config first (base configuration)
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: cannot read %s: %w", lc.ConfigFile, err)
		}
	}

	// 2. Enable automatic environment variable reading
	v.AutomaticEnv()
	bindEnvVars(v)

	// 3. Load .env and re-bind to pick up new variables
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return fmt.Errorf("config: cannot load %s: %w", lc.EnvFile, err)
		}
		bindEnvVars(v)
	}

	// 4. Unmarshal into the config struct
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: cannot unmarshal: %w", err)
	}

	// 5. Re-read the env block case-preserved. Viper lowercases every
	// key during Unmarshal, which corrupts case-sensitive environment
	// variable names.
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		if err := loadEnvBlock(lc.ConfigFile, cfg); err != nil {
			return err
		}
	}

	cfg.ApplyDefaults()
	return cfg.LoadEnvFile()
}

// loadEnvBlock decodes only the env map from the YAML config file with a
// decoder that keeps key casing intact.
func loadEnvBlock(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	var doc struct {
		Env map[string]string `yaml:"env"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	if len(doc.Env) > 0 {
		cfg.Env = doc.Env
	}
	return nil
}

// findConfigFile searches standard locations for a subprocess config file.
func findConfigFile(fs FileSystem) string {
	searchPaths := []string{
		"./subprocess.yml",
		"./config/subprocess.yml",
		"./config.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches standard locations for a .env file.
func findEnvFile(fs FileSystem) string {
	searchPaths := []string{
		".env.subprocess",
		".env",
		"config/.env",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars binds SUBPROCESS_* environment variables to Viper keys:
// SUBPROCESS_LOGGING_LEVEL becomes logging.level and logging_level.
func bindEnvVars(v *viper.Viper) {
	const prefix = "SUBPROCESS_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		v.Set(key, pair[1])
		v.Set(strings.ReplaceAll(key, "_", "."), pair[1])
	}
}
