// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (an optional .env file, loaded once) and
// github.com/caarlos0/env/v11 (struct tags). Each configuration type is parsed
// once per process and cached; later Load calls for the same type return the
// cached copy. Parse skips the cache and accepts an explicit environment,
// which is what tests use.
//
// A configuration type may implement Validator; Validate runs after parsing
// and its error is returned wrapped in ErrInvalidConfig.
//
//	type ServerConfig struct {
//	    AppURL    string `env:"APP_URL,required"`
//	    Transport string `env:"SESSION_TRANSPORT" envDefault:"query"`
//	}
//
//	func (c ServerConfig) Validate() error { ... }
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
