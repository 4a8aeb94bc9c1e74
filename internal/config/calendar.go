package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// CalendarSettings are the calendar knobs that rarely change per deployment.
// They are read from an optional YAML file.
type CalendarSettings struct {
	// DefaultVacationDays applies to users without a configured entitlement.
	DefaultVacationDays int `yaml:"default_vacation_days"`

	// ClipVacationToYear counts only the days of a leave that fall inside the
	// requested year.
	ClipVacationToYear bool `yaml:"clip_vacation_to_year"`

	// MaxCellEntries is how many entries a grid cell shows before "+N".
	MaxCellEntries int `yaml:"max_cell_entries"`

	// CacheEnabled memoizes aggregated month entries until the next write.
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheSize caps the memoized months; the least recently used go first.
	CacheSize int `yaml:"cache_size"`

	// Locale is the fallback language for labels, tooltips and reminders.
	Locale string `yaml:"locale"`

	// Colors overrides legend colors by key (vacation, sick, worked_full, ...).
	Colors map[string]string `yaml:"colors"`
}

// DefaultCalendarSettings returns the settings used when no file is given.
func DefaultCalendarSettings() *CalendarSettings {
	return &CalendarSettings{
		DefaultVacationDays: 30,
		ClipVacationToYear:  false,
		MaxCellEntries:      3,
		CacheEnabled:        true,
		CacheSize:           512,
		Locale:              "de",
		Colors:              map[string]string{},
	}
}

// Normalize fills in missing or out-of-range values so partially written
// files still behave.
func (s *CalendarSettings) Normalize() {
	if s.DefaultVacationDays <= 0 {
		s.DefaultVacationDays = 30
	}
	if s.MaxCellEntries <= 0 {
		s.MaxCellEntries = 3
	}
	if s.CacheSize <= 0 {
		s.CacheSize = 512
	}
	switch s.Locale {
	case "de", "en":
	default:
		s.Locale = "de"
	}
	if s.Colors == nil {
		s.Colors = map[string]string{}
	}
}

// LoadCalendarSettings reads path as YAML on top of the defaults. An empty
// path or a missing file yields the defaults.
func LoadCalendarSettings(path string) (*CalendarSettings, error) {
	settings := DefaultCalendarSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("invalid calendar settings %s: %w", path, err)
	}
	settings.Normalize()
	return settings, nil
}
