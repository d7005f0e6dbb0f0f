//go:build !gcloud

package config

func validatePlatform(_ *Config) error {
	return nil
}
