package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// cacheState is the on-disk representation of fetched holiday years
type cacheState struct {
	Years     map[int][]Holiday `json:"years"`
	UpdatedAt string            `json:"updated_at"`
}

// DiskCache wraps a HolidaySource and persists fetched years to a JSON
// file, so repeated runs work without network access.
type DiskCache struct {
	source    HolidaySource
	cacheFile string
	state     *cacheState
	logger    *zap.Logger
}

// NewDiskCache creates a new DiskCache around the given source
func NewDiskCache(source HolidaySource, cacheFile string, logger *zap.Logger) *DiskCache {
	return &DiskCache{
		source:    source,
		cacheFile: cacheFile,
		logger:    logger,
	}
}

// Load loads previously cached holiday data from file
func (dc *DiskCache) Load() error {
	data, err := os.ReadFile(dc.cacheFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			dc.state = &cacheState{Years: make(map[int][]Holiday)}
			return nil
		}
		return fmt.Errorf("failed to read holiday cache file: %w", err)
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse holiday cache file: %w", err)
	}
	if state.Years == nil {
		state.Years = make(map[int][]Holiday)
	}

	dc.state = &state
	dc.logger.Info("Holiday cache loaded",
		zap.String("file", dc.cacheFile),
		zap.Int("years", len(state.Years)))

	return nil
}

// Holidays returns cached holidays for the year, fetching and persisting
// them through the wrapped source on a miss.
func (dc *DiskCache) Holidays(year int) ([]Holiday, error) {
	if dc.state == nil {
		dc.state = &cacheState{Years: make(map[int][]Holiday)}
	}

	if holidays, ok := dc.state.Years[year]; ok {
		dc.logger.Debug("Using disk-cached holidays", zap.Int("year", year))
		return holidays, nil
	}

	holidays, err := dc.source.Holidays(year)
	if err != nil {
		return nil, err
	}

	dc.state.Years[year] = holidays
	if err := dc.save(); err != nil {
		// Cache write failure is not fatal for the analysis
		dc.logger.Warn("Failed to save holiday cache", zap.Error(err))
	}

	return holidays, nil
}

// save writes the cache state to file
func (dc *DiskCache) save() error {
	dc.state.UpdatedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(dc.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal holiday cache: %w", err)
	}

	if err := os.WriteFile(dc.cacheFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write holiday cache file: %w", err)
	}

	dc.logger.Debug("Holiday cache saved",
		zap.String("file", dc.cacheFile),
		zap.Int("years", len(dc.state.Years)))

	return nil
}
