package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Purchase.VisitWindowDays < 1 {
		return nil, fmt.Errorf("PURCHASE_VISIT_WINDOW_DAYS must be positive, got %d", cfg.Purchase.VisitWindowDays)
	}

	return cfg, nil
}
