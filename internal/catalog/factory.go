package catalog

import (
	"time"

	"github.com/traveltrucks/traveltrucks/internal/config"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

// NewFromConfig returns the fixture source when catalog_fixture is set and
// the HTTP source otherwise.
func NewFromConfig() (ports.CatalogSource, error) {
	if fixture := config.Get("catalog_fixture", ""); fixture != "" {
		logging.Debug("using catalog fixture", "path", fixture)
		return LoadStaticSource(fixture)
	}
	return NewHTTPSource(Options{
		BaseURL:       config.Get("api_base_url", ""),
		Timeout:       time.Duration(config.GetInt("api_timeout_seconds", 15)) * time.Second,
		RatePerSecond: config.GetInt("api_rate_per_second", 5),
		MaxRetries:    config.GetInt("api_max_retries", 3),
	}), nil
}
