package predict

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/pkg/contract"
)

// BreakerConfig enables a circuit breaker in front of each endpoint. Only
// transport failures and 5xx responses count against it.
type BreakerConfig struct {
	Name        string
	MaxFailures uint32
	OpenTimeout time.Duration
	Interval    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithContract validates success bodies against the given contract. Passing
// nil disables contract checks.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
		c.contractSet = true
	}
}

// WithRateLimit limits outgoing requests to perSecond per endpoint. Zero
// disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond < 0 {
			perSecond = 0
		}
		c.rateLimit = perSecond
	}
}

// WithEndpointPolicy restricts which endpoints Predict will call.
func WithEndpointPolicy(policy EndpointPolicy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithBreaker enables a circuit breaker per endpoint.
func WithBreaker(cfg BreakerConfig) Option {
	return func(c *Client) {
		c.breakerCfg = &cfg
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
