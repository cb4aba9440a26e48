// Package config loads environment-driven configuration into Go structs.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional .env files are loaded first (existing variables win), then the
// environment is parsed into the target struct using `env` and `envDefault`
// field tags.
//
// # Usage
//
//	type Config struct {
//	    ErrorClass string `env:"ERROR_CLASS" envDefault:"error-message"`
//	    Workers    int    `env:"CONCURRENCY" envDefault:"1"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("FORM_"), config.WithEnvFiles(".env")); err != nil {
//	    return err
//	}
//
// WithEnvironment replaces the process environment with a fixed map, which
// keeps tests independent of os.Environ.
//
// # Error Handling
//
// Errors wrap ErrNilPointer, ErrEnvFile or ErrParsingConfig and can be
// matched with errors.Is.
package config
