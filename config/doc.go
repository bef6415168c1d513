// Package config loads optional library defaults for subprocess pipelines:
// working directory, extra child environment, and logging settings.
//
// Configuration is resolved from an optional YAML file plus environment
// variables (viper), with .env files loaded through godotenv. Plain library
// use needs none of this; pipeline.FromConfig wires a loaded Config into a
// Command.
package config
