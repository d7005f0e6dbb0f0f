//go:build gcloud

package config

func validatePlatform(cfg *Config) error {
	if cfg.GCloudProjectID == "" {
		return ErrGCloudProjectMissing
	}
	return nil
}
