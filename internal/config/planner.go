package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

const (
	plannerConfigFileEnv        = "PLANNER_CONFIG_FILE"
	plannerWarnAboveHoursEnv    = "PLANNER_WARN_ABOVE_HOURS"
	plannerMinTotalHoursEnv     = "PLANNER_MIN_TOTAL_HOURS"
	plannerMaxTotalHoursEnv     = "PLANNER_MAX_TOTAL_HOURS"
	plannerDefaultTotalHoursEnv = "PLANNER_DEFAULT_TOTAL_HOURS"
	plannerDefaultSubjectsEnv   = "PLANNER_DEFAULT_SUBJECTS"
	plannerDefaultStudyDaysEnv  = "PLANNER_DEFAULT_STUDY_DAYS"

	defaultWarnAboveHours    = 58.0
	defaultMinTotalHours     = 1.0
	defaultMaxTotalHours     = 168.0
	defaultTotalHours        = 15.0
	defaultSubjectDifficulty = 3
	defaultSubjectDaysLeft   = 7.0
)

var defaultSubjects = []string{"Math", "Economics", "Statistics"}

type PlannerConfig struct {
	WarnAboveHours    float64  `yaml:"warn_above_hours"`
	MinTotalHours     float64  `yaml:"min_total_hours"`
	MaxTotalHours     float64  `yaml:"max_total_hours"`
	DefaultTotalHours float64  `yaml:"default_total_hours"`
	DefaultDifficulty int      `yaml:"default_difficulty"`
	DefaultDaysLeft   float64  `yaml:"default_days_left"`
	DefaultSubjects   []string `yaml:"default_subjects"`
	DefaultStudyDays  []string `yaml:"default_study_days"`
}

func DefaultPlannerConfig() *PlannerConfig {
	days := make([]string, 0, 5)
	for _, d := range domain.Weekdays() {
		days = append(days, d.String())
	}

	subjects := make([]string, len(defaultSubjects))
	copy(subjects, defaultSubjects)

	return &PlannerConfig{
		WarnAboveHours:    defaultWarnAboveHours,
		MinTotalHours:     defaultMinTotalHours,
		MaxTotalHours:     defaultMaxTotalHours,
		DefaultTotalHours: defaultTotalHours,
		DefaultDifficulty: defaultSubjectDifficulty,
		DefaultDaysLeft:   defaultSubjectDaysLeft,
		DefaultSubjects:   subjects,
		DefaultStudyDays:  days,
	}
}

// LoadPlannerConfig starts from the defaults, overlays PLANNER_CONFIG_FILE
// when set and then applies individual env overrides.
func LoadPlannerConfig() (*PlannerConfig, error) {
	cfg := DefaultPlannerConfig()

	if path := os.Getenv(plannerConfigFileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPlannerConfigFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPlannerConfigFile, path, err)
		}
	}

	cfg.WarnAboveHours = envPositiveFloat(plannerWarnAboveHoursEnv, cfg.WarnAboveHours)
	cfg.MinTotalHours = envPositiveFloat(plannerMinTotalHoursEnv, cfg.MinTotalHours)
	cfg.MaxTotalHours = envPositiveFloat(plannerMaxTotalHoursEnv, cfg.MaxTotalHours)
	cfg.DefaultTotalHours = envPositiveFloat(plannerDefaultTotalHoursEnv, cfg.DefaultTotalHours)

	if v := os.Getenv(plannerDefaultSubjectsEnv); v != "" {
		cfg.DefaultSubjects = splitList(v)
	}
	if v := os.Getenv(plannerDefaultStudyDaysEnv); v != "" {
		cfg.DefaultStudyDays = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *PlannerConfig) Validate() error {
	var errs []error

	if c.MinTotalHours <= 0 {
		errs = append(errs, errors.New("min total hours must be positive"))
	}
	if c.MaxTotalHours < c.MinTotalHours {
		errs = append(errs, errors.New("max total hours must not be below min total hours"))
	}
	if c.DefaultTotalHours < c.MinTotalHours || c.DefaultTotalHours > c.MaxTotalHours {
		errs = append(errs, fmt.Errorf("default total hours %g outside [%g, %g]", c.DefaultTotalHours, c.MinTotalHours, c.MaxTotalHours))
	}
	if c.WarnAboveHours <= 0 {
		errs = append(errs, errors.New("warn above hours must be positive"))
	}
	if c.DefaultDifficulty < domain.MinDifficulty || c.DefaultDifficulty > domain.MaxDifficulty {
		errs = append(errs, fmt.Errorf("default difficulty %d outside [%d, %d]", c.DefaultDifficulty, domain.MinDifficulty, domain.MaxDifficulty))
	}
	if c.DefaultDaysLeft < 0 {
		errs = append(errs, errors.New("default days left must not be negative"))
	}
	for _, d := range c.DefaultStudyDays {
		if !domain.Day(d).IsValid() {
			errs = append(errs, fmt.Errorf("unknown study day %q", d))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPlannerConfig, errors.Join(errs...))
	}

	return nil
}

// StudyDays returns DefaultStudyDays as domain days.
func (c *PlannerConfig) StudyDays() []domain.Day {
	days := make([]domain.Day, 0, len(c.DefaultStudyDays))
	for _, d := range c.DefaultStudyDays {
		days = append(days, domain.Day(d))
	}
	return days
}

func envPositiveFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
