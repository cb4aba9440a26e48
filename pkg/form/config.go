package form

import (
	"errors"

	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// EnvPrefix is prepended to the env tags of Config by LoadConfig.
const EnvPrefix = "FORM_"

// Config holds the environment-configurable settings of a form.
type Config struct {
	ErrorClass   string `env:"ERROR_CLASS" envDefault:"error-message"`
	ValidClass   string `env:"VALID_CLASS" envDefault:"is-valid"`
	InvalidClass string `env:"INVALID_CLASS" envDefault:"is-invalid"`
	Concurrency  int    `env:"CONCURRENCY" envDefault:"1"`
	// RuleSetFile is an optional YAML rule set registered on top of the
	// built-in rules.
	RuleSetFile string `env:"RULESET_FILE"`
}

// LoadConfig reads Config from FORM_* environment variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithConfig applies cfg. When RuleSetFile is set, the rule set is loaded and
// registered on top of the built-in rules; a failure is reported by New.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		WithOptions(Options{
			ErrorClass:   cfg.ErrorClass,
			ValidClass:   cfg.ValidClass,
			InvalidClass: cfg.InvalidClass,
		})(s)
		WithConcurrency(cfg.Concurrency)(s)

		if cfg.RuleSetFile == "" {
			return
		}
		rs, err := validator.LoadRuleSetFile(cfg.RuleSetFile)
		if err != nil {
			s.errs = append(s.errs, errors.Join(ErrRuleSet, err))
			return
		}
		reg, err := validator.New(validator.WithRuleSet(rs))
		if err != nil {
			s.errs = append(s.errs, errors.Join(ErrRuleSet, err))
			return
		}
		s.registry = reg
	}
}
