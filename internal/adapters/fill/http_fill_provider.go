package fill

import (
	"collection-route-service/internal/domain"
	"collection-route-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPFillProvider implements FillLevelProvider against the sensor
// ingestion backend's REST API.
//
// The provider is safe for concurrent use.
type HTTPFillProvider struct {
	session *http.Client
	baseURL string
}

func NewHTTPFillProvider(baseURL string) (*HTTPFillProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("sensor backend base URL is empty")
	}

	return &HTTPFillProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}, nil
}

type fillLevelsResponse struct {
	Levels map[string]float64 `json:"levels"`
}

// GetFillLevels fetches the latest reading per bin for one floor.
// Transient failures (5xx, network) are retried with a short backoff.
func (p *HTTPFillProvider) GetFillLevels(
	ctx context.Context,
	floor domain.FloorTag,
	binIDs []string,
) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "sensor.GetFillLevels")(&err)

	if len(binIDs) == 0 {
		return map[string]float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/floors/%s/levels?bins=%s",
		p.baseURL,
		url.PathEscape(string(floor)),
		url.QueryEscape(strings.Join(binIDs, ",")),
	)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		levels, retryable, err := p.fetch(ctx, endpoint)
		if err == nil {
			return levels, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("get fill levels for floor %q: %w", floor, lastErr)
}

func (p *HTTPFillProvider) fetch(ctx context.Context, endpoint string) (map[string]float64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.session.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("sensor backend request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		return nil, true, fmt.Errorf("sensor backend status %d", res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("sensor backend status %d", res.StatusCode)
	}

	var body fillLevelsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("decode sensor backend response: %w", err)
	}
	if body.Levels == nil {
		return map[string]float64{}, false, nil
	}

	return body.Levels, false, nil
}
