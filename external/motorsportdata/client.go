package motorsportdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
	"github.com/paddockleague/fantasy-motogp/internal/platform/resilience"
	"github.com/paddockleague/fantasy-motogp/internal/usecase"
)

var errProviderTransient = crerr.New("motorsport data transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls season calendars and entry lists from the upstream
// motorsport data feed. Responses for the same URL are deduplicated
// through singleflight so a burst of syncs costs one upstream call.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flights        resilience.SingleFlight
}

var _ usecase.RaceDataProvider = (*Client)(nil)

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type calendarDoc struct {
	Races []struct {
		ID         string     `json:"id"`
		Round      int        `json:"round"`
		Name       string     `json:"name"`
		Circuit    string     `json:"circuit"`
		Country    string     `json:"country"`
		SprintDate *time.Time `json:"sprintDate"`
		GPDate     time.Time  `json:"gpDate"`
	} `json:"races"`
}

func (c *Client) FetchCalendar(ctx context.Context, season int) ([]usecase.ProviderRace, error) {
	body, err := c.get(ctx, "/v1/seasons/"+strconv.Itoa(season)+"/calendar")
	if err != nil {
		return nil, err
	}

	var doc calendarDoc
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode calendar")
	}

	out := make([]usecase.ProviderRace, 0, len(doc.Races))
	for _, in := range doc.Races {
		out = append(out, usecase.ProviderRace{
			ExternalID: in.ID,
			Round:      in.Round,
			Name:       in.Name,
			Circuit:    in.Circuit,
			Country:    in.Country,
			SprintDate: in.SprintDate,
			GPDate:     in.GPDate,
		})
	}
	return out, nil
}

type entryListDoc struct {
	Entries []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Number   int    `json:"number"`
		Team     string `json:"team"`
		Category string `json:"category"`
		Type     string `json:"type"`
		Value    int    `json:"value"`
	} `json:"entries"`
}

func (c *Client) FetchEntryList(ctx context.Context, season int) ([]usecase.ProviderRider, error) {
	body, err := c.get(ctx, "/v1/seasons/"+strconv.Itoa(season)+"/entries")
	if err != nil {
		return nil, err
	}

	var doc entryListDoc
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode entry list")
	}

	out := make([]usecase.ProviderRider, 0, len(doc.Entries))
	for _, in := range doc.Entries {
		out = append(out, usecase.ProviderRider{
			ExternalID: in.ID,
			Name:       in.Name,
			Number:     in.Number,
			Team:       in.Team,
			Category:   in.Category,
			Type:       in.Type,
			Value:      in.Value,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, crerr.New("provider base url is not configured")
	}

	url := c.baseURL + path
	value, err, _ := c.flights.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	body, ok := value.([]byte)
	if !ok {
		return nil, crerr.New("unexpected singleflight payload")
	}
	return body, nil
}

// fetch retries transient failures with a flat backoff. Non-2xx
// responses below 500 fail immediately, those are caller errors or
// auth problems that retrying cannot fix.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "provider circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("motorsport data is temporarily unavailable: %w", err)
		}
	}

	attempts := c.retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			c.recordCircuitResult(nil)
			return body, nil
		}
		lastErr = err
		if !stderrors.Is(err, errProviderTransient) {
			c.recordCircuitResult(err)
			return nil, err
		}
		c.logger.WarnContext(ctx, "provider request failed",
			"url", url, "attempt", attempt+1, "error", err)
	}

	c.recordCircuitResult(lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "create provider request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errProviderTransient, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", errProviderTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status %d from %s", errProviderTransient, resp.StatusCode, url)
		}
		return nil, crerr.Newf("provider returned status %d for %s", resp.StatusCode, url)
	}
	return body, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errProviderTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}
