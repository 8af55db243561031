// Package config loads configuration for instrumented amalfi programs.
//
// It uses Viper to read a YAML file, godotenv to pick up a .env file, and
// binds prefixed environment variables on top.
//
// # Usage
//
//	var cfg instrument.Config
//	err := config.Load("ingest", &cfg, config.WithConfigFile("ingest.yml"))
//
// Environment variables override file values using the AMALFI_ prefix with
// underscore-separated paths (e.g., AMALFI_TRACING_ENABLED).
package config
