package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrPlannerConfigFile    = errors.New("failed to read planner config file")
	ErrInvalidPlannerConfig = errors.New("invalid planner configuration")
	ErrGCloudProjectMissing = errors.New("GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT_ID is required")
)
