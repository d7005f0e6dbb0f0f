package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error

	if !cfg.Cache.Disabled {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cfg.Planner.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := validatePlatform(cfg); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
