// Package config loads and validates the showsaver client configuration.
//
// Configuration is TOML, read from ~/.config/showsaver/config.toml or a
// showsaver.toml in the working directory, with defaults applied for any
// omitted value. Load normalizes paths (~ expansion) and the server base URL
// before validation so callers always see a usable Config.
package config
