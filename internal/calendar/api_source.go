package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/workday-analyzer/pkg/dateutil"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 24 * time.Hour
)

// APISource implements HolidaySource using a Nager.Date-style public
// holidays API: GET {baseURL}/{year}/{countryCode} returns a JSON array
// of holidays.
type APISource struct {
	baseURL    string
	country    string
	cacheTTL   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
}

type cachedYear struct {
	holidays  []Holiday
	fetchedAt time.Time
}

// apiHoliday represents one entry of the API response
type apiHoliday struct {
	Date        string `json:"date"` // YYYY-MM-DD
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// NewAPISource creates a new APISource instance
func NewAPISource(baseURL, country string, cacheTTL time.Duration, logger *zap.Logger) *APISource {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &APISource{
		baseURL:  baseURL,
		country:  country,
		cacheTTL: cacheTTL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		cache:  make(map[int]*cachedYear),
	}
}

// Holidays returns all public holidays in the year
func (s *APISource) Holidays(year int) ([]Holiday, error) {
	// Check cache
	s.cacheMu.RLock()
	if cached, ok := s.cache[year]; ok {
		if time.Since(cached.fetchedAt) < s.cacheTTL {
			s.cacheMu.RUnlock()
			s.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.holidays, nil
		}
	}
	s.cacheMu.RUnlock()

	// Fetch from API
	holidays, err := s.fetchYear(year)
	if err != nil {
		return nil, err
	}

	// Update cache
	s.cacheMu.Lock()
	s.cache[year] = &cachedYear{
		holidays:  holidays,
		fetchedAt: time.Now(),
	}
	s.cacheMu.Unlock()

	s.logger.Info("Holidays fetched and cached",
		zap.Int("year", year),
		zap.String("country", s.country),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// fetchYear fetches one year of holidays from the API
func (s *APISource) fetchYear(year int) ([]Holiday, error) {
	// Build URL: https://date.nager.at/api/v3/PublicHolidays/2025/DE
	url := fmt.Sprintf("%s/%d/%s", s.baseURL, year, s.country)

	s.logger.Debug("Fetching holiday data",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no holiday data for country %s, year %d", s.country, year)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var apiHolidays []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&apiHolidays); err != nil {
		return nil, fmt.Errorf("failed to parse holiday API response: %w", err)
	}

	return convertAPIHolidays(apiHolidays, s.logger)
}

// convertAPIHolidays converts API entries to Holidays, skipping regional
// holidays that do not apply country-wide.
func convertAPIHolidays(apiHolidays []apiHoliday, logger *zap.Logger) ([]Holiday, error) {
	holidays := make([]Holiday, 0, len(apiHolidays))

	for _, h := range apiHolidays {
		if !h.Global {
			logger.Debug("Skipping regional holiday",
				zap.String("date", h.Date),
				zap.String("name", h.Name))
			continue
		}

		date, err := dateutil.ParseDate(h.Date)
		if err != nil {
			logger.Warn("Failed to parse holiday date",
				zap.String("date", h.Date),
				zap.Error(err))
			continue
		}

		name := h.LocalName
		if name == "" {
			name = h.Name
		}

		holidays = append(holidays, Holiday{Date: date, Name: name})
	}

	return holidays, nil
}

// ClearCache clears the in-memory cache
func (s *APISource) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[int]*cachedYear)
	s.logger.Info("Holiday cache cleared")
}
