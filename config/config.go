package config

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/kbukum/subprocess/logger"
	"github.com/kbukum/subprocess/util"
	"github.com/kbukum/subprocess/validation"
)

// Config contains library-wide defaults applied to new pipelines.
type Config struct {
	// Dir is the default working directory for spawned processes.
	Dir string `yaml:"dir" mapstructure:"dir" validate:"omitempty,dir"`
	// Env is extra environment passed to spawned processes.
	Env map[string]string `yaml:"env" mapstructure:"env"`
	// EnvFile is an optional .env file whose entries are merged into Env.
	EnvFile string `yaml:"env_file" mapstructure:"env_file" validate:"omitempty,file"`
	// Logging configures the pipeline logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Logging.ServiceName = util.Coalesce(c.Logging.ServiceName, "subprocess")
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// LoadEnvFile merges the entries of EnvFile into Env. Explicit Env entries
// win over file entries.
func (c *Config) LoadEnvFile() error {
	if c.EnvFile == "" {
		return nil
	}
	fileEnv, err := godotenv.Read(c.EnvFile)
	if err != nil {
		return fmt.Errorf("config: cannot read env file %s: %w", c.EnvFile, err)
	}
	if c.Env == nil {
		c.Env = make(map[string]string, len(fileEnv))
	}
	for k, v := range fileEnv {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
	return nil
}

// ExtraEnv returns Env as a sorted key=value slice, the shape the process
// package expects.
func (c *Config) ExtraEnv() []string {
	if len(c.Env) == 0 {
		return nil
	}
	env := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}
