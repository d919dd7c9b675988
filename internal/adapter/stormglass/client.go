// Package stormglass implements feature acquisition against the Stormglass
// point-weather API.
package stormglass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// Client fetches marine feature records for a coordinate pair. Each call is a
// single attempt; the circuit breaker fails fast during provider outages but
// never retries. Retry policy, if any, belongs to the orchestrator.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Stormglass client against the given API base URL.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stormglass",
		MaxRequests: 2,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		breaker: cb,
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch acquires the current reporting hour's features for a spot. It never
// fails: any acquisition problem logs, counts, and returns a zero record
// with validity false so the caller degrades to the fallback forecast.
func (c *Client) Fetch(ctx context.Context, loc domain.Location) (domain.FeatureRecord, bool) {
	start := domain.Clock().Now().UTC().Truncate(time.Hour)

	records, err := c.fetchWindow(ctx, loc, start, start.Add(time.Hour))
	if err != nil {
		c.logger.Warn("feature fetch failed",
			"spot_id", loc.ID,
			"spot", loc.Name,
			"error", err,
		)
		c.metrics.FetchFailures.Inc()
		return domain.FeatureRecord{}, false
	}

	rec := records[0]
	complete := rec.Complete()
	if !complete {
		c.logger.Warn("feature fetch incomplete", "spot_id", loc.ID, "spot", loc.Name)
		c.metrics.FetchIncomplete.Inc()
	}
	return rec, complete
}

// FetchRange acquires every hourly record in [start, end). Unlike Fetch it
// surfaces errors: the historical collector reports per-spot failures itself.
func (c *Client) FetchRange(ctx context.Context, loc domain.Location, start, end time.Time) ([]domain.FeatureRecord, error) {
	return c.fetchWindow(ctx, loc, start, end)
}

func (c *Client) fetchWindow(ctx context.Context, loc domain.Location, start, end time.Time) ([]domain.FeatureRecord, error) {
	params := url.Values{
		"lat":    {strconv.FormatFloat(loc.Lat(), 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(loc.Lng(), 'f', -1, 64)},
		"params": {strings.Join(domain.FeatureNames, ",")},
		"start":  {strconv.FormatInt(start.Unix(), 10)},
		"end":    {strconv.FormatInt(end.Unix(), 10)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	began := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(req)
	})
	c.metrics.FetchDuration.Observe(time.Since(began).Seconds())
	if err != nil {
		return nil, err
	}

	hours := result.([]hour)
	if len(hours) == 0 {
		return nil, fmt.Errorf("empty response for window %s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	records := make([]domain.FeatureRecord, 0, len(hours))
	for _, h := range hours {
		records = append(records, h.toRecord())
	}
	return records, nil
}

func (c *Client) doRequest(req *http.Request) ([]hour, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("point weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("stormglass API error: status %d: %s", resp.StatusCode, body)
	}

	var payload pointResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.Hours, nil
}

// Stormglass API response types. Each hour maps feature names to per-source
// estimates, e.g. {"time":"...","swellHeight":{"sg":1.2,"noaa":1.4}}.

type pointResponse struct {
	Hours []hour `json:"hours"`
}

type hour map[string]json.RawMessage

// toRecord flattens one hour into a FeatureRecord, averaging each feature's
// numeric source estimates. Null or non-numeric sources are skipped; a
// feature with no numeric source at all stays absent.
func (h hour) toRecord() domain.FeatureRecord {
	rec := domain.FeatureRecord{Values: make(map[string]float64, len(domain.FeatureNames))}

	if raw, ok := h["time"]; ok {
		var ts string
		if err := json.Unmarshal(raw, &ts); err == nil {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.CapturedAt = t.UTC()
			}
		}
	}
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = domain.Clock().Now().UTC()
	}

	for _, name := range domain.FeatureNames {
		raw, ok := h[name]
		if !ok {
			continue
		}
		var sources map[string]*float64
		if err := json.Unmarshal(raw, &sources); err != nil {
			continue
		}

		var sum float64
		var n int
		for _, v := range sources {
			if v == nil {
				continue
			}
			sum += *v
			n++
		}
		if n > 0 {
			rec.Values[name] = sum / float64(n)
		}
	}
	return rec
}
