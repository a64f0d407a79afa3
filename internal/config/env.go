package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the FUNDBOARD_* environment overrides.
// Booleans are pointers: nil means the variable is unset or empty and
// must not override the config file.
type Env struct {
	Data                  string `env:"FUNDBOARD_DATA"`
	Sort                  string `env:"FUNDBOARD_SORT"`
	Order                 string `env:"FUNDBOARD_ORDER"`
	IncludeFunded         *bool  `env:"FUNDBOARD_INCLUDE_FUNDED"`
	TrustStoredDifference *bool  `env:"FUNDBOARD_TRUST_DIFFERENCE"`
	Currency              string `env:"FUNDBOARD_CURRENCY"`
	Addr                  string `env:"FUNDBOARD_ADDR"`
	Title                 string `env:"FUNDBOARD_TITLE"`
}

// ParseEnv reads the overrides from the process environment.
func ParseEnv() (*Env, error) {
	return ParseEnvFrom(nil)
}

// ParseEnvFrom reads the overrides from environ, or from the process
// environment when environ is nil.
func ParseEnvFrom(environ map[string]string) (*Env, error) {
	var e Env
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		// Only the boolean fields can fail to parse.
		if errors.Is(err, env.ParseError{}) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBoolean, err)
		}
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &e, nil
}

// ApplyEnv overlays the non-empty environment overrides.
func (c *Config) ApplyEnv(e *Env) error {
	if e == nil {
		return nil
	}
	if e.Data != "" {
		c.DataPath = e.Data
	}
	if e.Sort != "" {
		if err := c.SetSortKey(e.Sort); err != nil {
			return err
		}
	}
	if e.Order != "" {
		if err := c.SetDirection(e.Order); err != nil {
			return err
		}
	}
	if e.IncludeFunded != nil {
		c.Query.IncludeFunded = *e.IncludeFunded
	}
	if e.TrustStoredDifference != nil {
		c.TrustStoredDifference = *e.TrustStoredDifference
	}
	if e.Currency != "" {
		c.CurrencySymbol = e.Currency
	}
	if e.Addr != "" {
		c.ListenAddr = e.Addr
	}
	if e.Title != "" {
		c.Title = e.Title
	}
	return nil
}
