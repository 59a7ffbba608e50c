// Package config loads configuration for fetchkit programs.
//
// It uses Viper to read a YAML file, godotenv to load an optional .env file,
// and binds prefixed environment variables on top.
//
// # Usage
//
//	var cfg appConfig
//	err := config.LoadConfig("fetchkit", &cfg, config.WithConfigFile(path))
//
// FETCHKIT_CLIENT_BASE_URL overrides client.base_url.
package config
