package circuitbreaker

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// HTTPClient wraps an HTTP client with circuit breaker protection for
// outbound calls to tenant integration APIs and other third parties.
type HTTPClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// Settings configures the wrapped client and its breaker.
type Settings struct {
	Name        string
	Timeout     time.Duration
	MaxRequests uint32
	Interval    time.Duration
	OpenTimeout time.Duration
	MinRequests uint32
	FailureRate float64
}

// DefaultSettings returns settings suitable for most outbound callers.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:        name,
		Timeout:     15 * time.Second,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		OpenTimeout: 30 * time.Second,
		MinRequests: 5,
		FailureRate: 0.6,
	}
}

// NewHTTPClient builds a breaker-protected HTTP client.
func NewHTTPClient(settings Settings, log *zap.Logger) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureRate
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &HTTPClient{
		client:  &http.Client{Timeout: settings.Timeout},
		breaker: breaker,
		log:     log,
	}
}

// Do executes the request through the breaker. A response with a 5xx
// status counts as a failure so a flapping upstream trips the circuit.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, fmt.Errorf("server error: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			c.log.Warn("Circuit breaker open, request blocked",
				zap.String("url", req.URL.String()),
				zap.String("breaker", c.breaker.Name()),
			)
			return nil, err
		}
		// A 5xx response is returned alongside the error so callers can
		// still inspect the body.
		if resp, ok := result.(*http.Response); ok && resp != nil {
			return resp, nil
		}
		return nil, err
	}
	return result.(*http.Response), nil
}
