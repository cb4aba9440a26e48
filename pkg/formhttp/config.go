package formhttp

import (
	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/form"
)

// Config holds the environment-configurable settings of a Handler.
type Config struct {
	SuccessURL   string `env:"SUCCESS_URL"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// LoadConfig reads Config from FORM_* environment variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(form.EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithConfig applies cfg.
func WithConfig(cfg Config) Option {
	return func(h *Handler) {
		if cfg.SuccessURL != "" {
			h.successURL = cfg.SuccessURL
		}
		h.maxBodyBytes = cfg.MaxBodyBytes
	}
}
