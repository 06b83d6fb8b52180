package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Matching modes
const (
	ModeGeo      = "geo"
	ModeSemantic = "semantic"
)

// Supported holiday-table range. Years outside are rejected up front
// instead of failing mid-run on a holiday lookup.
const (
	minSupportedYear = 2000
	maxSupportedYear = 2100
)

// Config represents application configuration
type Config struct {
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Locations LocationsConfig `mapstructure:"locations"`
	Holidays  HolidaysConfig  `mapstructure:"holidays"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AnalysisConfig represents the core analysis parameters
type AnalysisConfig struct {
	Year         int    `mapstructure:"year"`
	Mode         string `mapstructure:"mode"` // "geo" or "semantic"
	WorkingHours string `mapstructure:"working_hours"`
	Timezone     string `mapstructure:"timezone"`
	TimelineFile string `mapstructure:"timeline_file"`
}

// LocationsConfig represents the reference points for geo matching
type LocationsConfig struct {
	Office       Coordinate `mapstructure:"office"`
	Home         Coordinate `mapstructure:"home"`
	RadiusMeters float64    `mapstructure:"radius_meters"`
}

// Coordinate represents a configured lat/lng pair
type Coordinate struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

// HolidaysConfig represents the public holiday lookup configuration
type HolidaysConfig struct {
	Country      string `mapstructure:"country"` // ISO 3166-1 alpha-2
	APIURL       string `mapstructure:"api_url"`
	CacheFile    string `mapstructure:"cache_file"`
	FallbackFile string `mapstructure:"fallback_file"`
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// WorkWindow is a half-open clock-time interval [Start, End) applied to
// observation times-of-day.
type WorkWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// Contains reports whether t's local time-of-day falls within the window.
// The start is inclusive, the end exclusive.
func (w WorkWindow) Contains(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= w.startMinutes() && minutes < w.endMinutes()
}

// String formats the window as HH:MM-HH:MM
func (w WorkWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
}

func (w WorkWindow) startMinutes() int { return w.StartHour*60 + w.StartMinute }
func (w WorkWindow) endMinutes() int   { return w.EndHour*60 + w.EndMinute }

// ParseWorkWindow parses a "HH:MM-HH:MM" string into a WorkWindow
func ParseWorkWindow(s string) (WorkWindow, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return WorkWindow{}, fmt.Errorf("invalid working hours %q: expected HH:MM-HH:MM", s)
	}

	var w WorkWindow
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d:%d", &w.StartHour, &w.StartMinute); err != nil {
		return WorkWindow{}, fmt.Errorf("invalid window start %q: %w", parts[0], err)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d:%d", &w.EndHour, &w.EndMinute); err != nil {
		return WorkWindow{}, fmt.Errorf("invalid window end %q: %w", parts[1], err)
	}

	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 0 || w.EndHour > 23 ||
		w.StartMinute < 0 || w.StartMinute > 59 || w.EndMinute < 0 || w.EndMinute > 59 {
		return WorkWindow{}, fmt.Errorf("working hours %q out of range", s)
	}

	if w.startMinutes() >= w.endMinutes() {
		return WorkWindow{}, fmt.Errorf("working hours %q: start must be before end", s)
	}

	return w, nil
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workday-analyzer")
		v.AddConfigPath("/etc/workday-analyzer")
	}

	setDefaults(v)

	// Read environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.mode", ModeGeo)
	v.SetDefault("analysis.working_hours", "09:00-18:00")
	v.SetDefault("analysis.timezone", "Europe/Berlin")
	v.SetDefault("analysis.timeline_file", "Timeline.json")
	v.SetDefault("locations.radius_meters", 100)
	v.SetDefault("holidays.api_url", "https://date.nager.at/api/v3/PublicHolidays")
	v.SetDefault("logging.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Analysis config
	if c.Analysis.Year < minSupportedYear || c.Analysis.Year > maxSupportedYear {
		return fmt.Errorf("analysis.year must be between %d and %d, got %d",
			minSupportedYear, maxSupportedYear, c.Analysis.Year)
	}

	if c.Analysis.Mode != ModeGeo && c.Analysis.Mode != ModeSemantic {
		return fmt.Errorf("analysis.mode must be '%s' or '%s', got '%s'",
			ModeGeo, ModeSemantic, c.Analysis.Mode)
	}

	if _, err := ParseWorkWindow(c.Analysis.WorkingHours); err != nil {
		return fmt.Errorf("analysis.working_hours: %w", err)
	}

	if _, err := time.LoadLocation(c.Analysis.Timezone); err != nil {
		return fmt.Errorf("analysis.timezone '%s' is not a valid IANA zone: %w",
			c.Analysis.Timezone, err)
	}

	if c.Analysis.TimelineFile == "" {
		return fmt.Errorf("analysis.timeline_file is required")
	}

	// Geo mode needs both reference points and a radius
	if c.Analysis.Mode == ModeGeo {
		if err := c.Locations.Office.validate("locations.office"); err != nil {
			return err
		}
		if err := c.Locations.Home.validate("locations.home"); err != nil {
			return err
		}
		if c.Locations.RadiusMeters <= 0 {
			return fmt.Errorf("locations.radius_meters must be positive, got %g",
				c.Locations.RadiusMeters)
		}
	}

	// Validate Holidays config
	if len(c.Holidays.Country) != 2 {
		return fmt.Errorf("holidays.country must be a 2-letter ISO code, got '%s'",
			c.Holidays.Country)
	}
	if c.Holidays.APIURL == "" && c.Holidays.FallbackFile == "" {
		return fmt.Errorf("one of holidays.api_url or holidays.fallback_file is required")
	}

	return nil
}

func (coord Coordinate) validate(field string) error {
	if coord.Latitude < -90 || coord.Latitude > 90 {
		return fmt.Errorf("%s.latitude must be between -90 and 90, got %g", field, coord.Latitude)
	}
	if coord.Longitude < -180 || coord.Longitude > 180 {
		return fmt.Errorf("%s.longitude must be between -180 and 180, got %g", field, coord.Longitude)
	}
	return nil
}

// WorkWindow returns the parsed working-hours window. Validate must have
// passed for this to be safe.
func (c *AnalysisConfig) WorkWindow() WorkWindow {
	w, _ := ParseWorkWindow(c.WorkingHours)
	return w
}

// Location returns the configured timezone. Validate must have passed.
func (c *AnalysisConfig) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Timezone)
	return loc
}

// GetCacheTTL returns the holiday cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
