package analyzer

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/internal/calendar"
	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/internal/timeline"
)

// Analyzer runs the full classification pipeline: working-day calendar,
// timeline normalization, per-day matching and reduction.
type Analyzer struct {
	cfg       *config.Config
	generator *calendar.Generator
	matcher   Matcher
	logger    *zap.Logger
}

// New creates a new Analyzer with the matching strategy selected from
// configuration.
func New(cfg *config.Config, source calendar.HolidaySource, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		cfg:       cfg,
		generator: calendar.NewGenerator(source, logger),
		matcher:   NewMatcher(cfg),
		logger:    logger,
	}
}

// Run classifies every expected working day of the configured year from
// the timeline document read from r.
func (a *Analyzer) Run(r io.Reader) (*Report, error) {
	year := a.cfg.Analysis.Year

	workingDays, err := a.generator.WorkingDays(year)
	if err != nil {
		return nil, fmt.Errorf("failed to generate working-day calendar: %w", err)
	}

	doc, err := timeline.Parse(r)
	if err != nil {
		return nil, err
	}

	loader := timeline.NewLoader(
		year,
		a.cfg.Analysis.WorkWindow(),
		a.cfg.Analysis.Location(),
		a.logger,
	)
	byDay, stats := loader.DayObservations(doc)

	a.logger.Info("Classifying working days",
		zap.Int("year", year),
		zap.String("mode", a.cfg.Analysis.Mode),
		zap.Int("expected_working_days", len(workingDays)),
		zap.Int("days_with_observations", len(byDay)))

	report := Classify(workingDays, byDay, a.matcher)
	report.Year = year
	report.Stats = stats

	return report, nil
}
