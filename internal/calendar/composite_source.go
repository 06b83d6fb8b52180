package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeSource implements HolidaySource with fallback strategy
// Primary: APISource (network)
// Fallback: FileSource (local file)
type CompositeSource struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback HolidaySource, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns all public holidays in the year
func (cs *CompositeSource) Holidays(year int) ([]Holiday, error) {
	// Try primary first
	holidays, err := cs.primary.Holidays(year)
	if err == nil {
		return holidays, nil
	}

	if cs.fallback == nil {
		return nil, err
	}

	cs.logger.Warn("Primary holiday source failed, falling back to file",
		zap.Int("year", year),
		zap.Error(err))

	// Fallback to file
	holidays, fallbackErr := cs.fallback.Holidays(year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	return holidays, nil
}

// LoadFallback loads the fallback source (if FileSource)
func (cs *CompositeSource) LoadFallback() error {
	if fs, ok := cs.fallback.(*FileSource); ok {
		if err := fs.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holiday file: %w", err)
		}
		cs.logger.Info("Fallback holiday file loaded successfully")
	}
	return nil
}
