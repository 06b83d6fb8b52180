package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/workday-analyzer/internal/analyzer"
	"github.com/username/workday-analyzer/internal/calendar"
	"github.com/username/workday-analyzer/internal/config"
	"github.com/username/workday-analyzer/internal/report"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "workday-analyzer",
		Short: "Classify working days from a location timeline",
		Long:  "Classify each working day of a year as office, home, elsewhere or missing, based on a Google Timeline export and a public holiday calendar",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log settings; fall back to console logging
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Logging.File != "" {
				logger, err = initFileLogger(cfg.Logging.File, cfg.Logging.Level)
				if err != nil {
					initLogger()
				}
			} else {
				initLogger()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(calendarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	var timelinePath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify every expected working day of the configured year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			source, err := buildHolidaySource(cfg)
			if err != nil {
				return err
			}

			path := cfg.Analysis.TimelineFile
			if timelinePath != "" {
				path = timelinePath
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open timeline file: %w", err)
			}
			defer file.Close()

			logger.Info("Starting analysis",
				zap.Int("year", cfg.Analysis.Year),
				zap.String("mode", cfg.Analysis.Mode),
				zap.String("timeline_file", path),
				zap.String("working_hours", cfg.Analysis.WorkWindow().String()))

			a := analyzer.New(cfg, source, logger)
			rep, err := a.Run(file)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			report.NewRenderer(os.Stdout).Render(rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&timelinePath, "timeline", "", "Timeline export file (overrides config)")

	return cmd
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Print the expected working-day calendar for the configured year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			source, err := buildHolidaySource(cfg)
			if err != nil {
				return err
			}

			gen := calendar.NewGenerator(source, logger)
			info, err := gen.YearInfo(cfg.Analysis.Year)
			if err != nil {
				return fmt.Errorf("failed to generate calendar: %w", err)
			}

			fmt.Printf("Calendar %d (%s)\n", info.Year, cfg.Holidays.Country)
			fmt.Printf("  Working days:      %d\n", info.WorkingDays)
			fmt.Printf("  Weekend days:      %d\n", info.Weekends)
			fmt.Printf("  Weekday holidays:  %d\n", info.Holidays)

			if len(info.HolidayList) > 0 {
				fmt.Println("\nPublic holidays:")
				for _, h := range info.HolidayList {
					fmt.Printf("  %s (%s)  %s\n", h.Date, h.Date.Weekday().String()[:3], h.Name)
				}
			}

			return nil
		},
	}
}

// buildHolidaySource assembles the holiday source chain from config:
// API primary, optional file fallback, optional on-disk cache in front.
func buildHolidaySource(cfg *config.Config) (calendar.HolidaySource, error) {
	var source calendar.HolidaySource

	if cfg.Holidays.APIURL != "" {
		source = calendar.NewAPISource(
			cfg.Holidays.APIURL,
			cfg.Holidays.Country,
			cfg.Holidays.GetCacheTTL(),
			logger,
		)
	}

	if cfg.Holidays.FallbackFile != "" {
		fileSource := calendar.NewFileSource(cfg.Holidays.FallbackFile, logger)

		if source != nil {
			composite := calendar.NewCompositeSource(source, fileSource, logger)
			if err := composite.LoadFallback(); err != nil {
				logger.Warn("Failed to load fallback holiday file, continuing with API only",
					zap.Error(err))
			}
			source = composite
		} else {
			if err := fileSource.Load(); err != nil {
				return nil, fmt.Errorf("failed to load holiday file: %w", err)
			}
			source = fileSource
		}
	}

	if cfg.Holidays.CacheFile != "" {
		cache := calendar.NewDiskCache(source, cfg.Holidays.CacheFile, logger)
		if err := cache.Load(); err != nil {
			logger.Warn("Failed to load holiday cache, starting empty", zap.Error(err))
		}
		source = cache
	}

	return source, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
