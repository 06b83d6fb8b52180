package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/pkg/dateutil"
)

// FileSource implements HolidaySource using a local text file.
// Format: one holiday per line, "YYYY-MM-DD name", '#' starts a comment.
type FileSource struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Holiday // year -> holidays
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	loaded := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse line
		// Format: YYYY-MM-DD name
		// Example: 2025-10-03 Tag der Deutschen Einheit
		parts := strings.SplitN(line, " ", 2)

		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}

		fs.data[date.Year] = append(fs.data[date.Year], Holiday{Date: date, Name: name})
		loaded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("holidays", loaded),
		zap.Int("years", len(fs.data)))

	return nil
}

// Holidays returns all public holidays in the year
func (fs *FileSource) Holidays(year int) ([]Holiday, error) {
	holidays, ok := fs.data[year]
	if !ok {
		return nil, fmt.Errorf("year %d not found in holiday file %s", year, fs.filePath)
	}

	return holidays, nil
}
