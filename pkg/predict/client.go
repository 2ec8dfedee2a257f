package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-insurepredict/pkg/contract"
	"github.com/goliatone/go-insurepredict/pkg/model"
)

const (
	maxBodyBytes = 1 << 20

	maxGuardedEndpoints = 256
	guardIdleTTL        = time.Hour
)

// Predictor is the behaviour the form depends on.
type Predictor interface {
	Predict(ctx context.Context, endpoint string, payload model.PredictionRequest) (model.PredictionResult, error)
}

// Client posts prediction requests to an endpoint.
type Client struct {
	http        *http.Client
	timeout     time.Duration
	contract    *contract.Contract
	contractSet bool
	policy      EndpointPolicy
	rateLimit   float64
	breakerCfg  *BreakerConfig
	logger      *zap.Logger

	guardMu sync.Mutex
	guards  *expirable.LRU[string, *endpointGuard]
}

// endpointGuard holds the breaker and limiter of a single endpoint, so one
// failing endpoint never throttles or trips another.
type endpointGuard struct {
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

var _ Predictor = (*Client)(nil)

// New builds a client. Unless WithContract is given, success bodies are
// checked against the embedded endpoint contract.
func New(opts ...Option) *Client {
	c := &Client{
		http:   http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !c.contractSet {
		ct, err := contract.Load(context.Background())
		if err != nil {
			c.logger.Warn("endpoint contract unavailable, skipping response checks", zap.Error(err))
		}
		c.contract = ct
	}
	if c.breakerCfg != nil || c.rateLimit > 0 {
		c.guards = expirable.NewLRU[string, *endpointGuard](maxGuardedEndpoints, nil, guardIdleTTL)
	}
	return c
}

// BreakerState reports the breaker state for endpoint, or "disabled".
// Endpoints that were never called report "closed".
func (c *Client) BreakerState(endpoint string) string {
	if c == nil || c.breakerCfg == nil {
		return "disabled"
	}
	c.guardMu.Lock()
	guard, ok := c.guards.Peek(strings.TrimSpace(endpoint))
	c.guardMu.Unlock()
	if !ok || guard.breaker == nil {
		return gobreaker.StateClosed.String()
	}
	return guard.breaker.State().String()
}

func (c *Client) guard(endpoint string) *endpointGuard {
	if c.guards == nil {
		return nil
	}
	c.guardMu.Lock()
	defer c.guardMu.Unlock()

	if guard, ok := c.guards.Get(endpoint); ok {
		return guard
	}
	guard := &endpointGuard{}
	if c.rateLimit > 0 {
		guard.limiter = rate.NewLimiter(rate.Limit(c.rateLimit), 1)
	}
	if c.breakerCfg != nil {
		guard.breaker = newBreaker(*c.breakerCfg, endpoint, c.logger)
	}
	c.guards.Add(endpoint, guard)
	return guard
}

// Predict sends payload to endpoint once and returns the predicted category.
func (c *Client) Predict(ctx context.Context, endpoint string, payload model.PredictionRequest) (model.PredictionResult, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return model.PredictionResult{}, ErrEmptyEndpoint
	}
	if err := c.policy.Check(endpoint); err != nil {
		c.logger.Warn("prediction endpoint rejected", zap.String("endpoint", endpoint), zap.Error(err))
		return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	guard := c.guard(endpoint)
	if guard != nil && guard.limiter != nil {
		if err := guard.limiter.Wait(ctx); err != nil {
			return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
		}
	}

	if guard == nil || guard.breaker == nil {
		return c.do(ctx, endpoint, payload)
	}

	out, err := guard.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, endpoint, payload)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	result, _ := out.(model.PredictionResult)
	return result, err
}

func (c *Client) do(ctx context.Context, endpoint string, payload model.PredictionRequest) (model.PredictionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return model.PredictionResult{}, fmt.Errorf("predict: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("prediction request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return model.PredictionResult{}, &TransportError{Endpoint: endpoint, Err: err}
	}
	c.logger.Debug("prediction response",
		zap.String("endpoint", endpoint),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	return c.decode(res.StatusCode, raw)
}

func (c *Client) decode(status int, raw []byte) (model.PredictionResult, error) {
	ok := status >= 200 && status <= 299

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return model.PredictionResult{}, &ApplicationError{
			StatusCode: status,
			Reason:     "prediction endpoint returned a non-JSON body",
			Err:        err,
		}
	}
	if remote, _ := body["error"].(string); strings.TrimSpace(remote) != "" {
		return model.PredictionResult{}, &ApplicationError{StatusCode: status, Remote: remote}
	}
	if !ok {
		return model.PredictionResult{}, &ApplicationError{StatusCode: status}
	}

	if c.contract != nil {
		if err := c.contract.ValidatePrediction(body); err != nil {
			return model.PredictionResult{}, &ApplicationError{
				StatusCode: status,
				Reason:     "prediction endpoint response does not match the contract",
				Err:        err,
			}
		}
	}

	category, _ := body["predicted_category"].(string)
	if strings.TrimSpace(category) == "" {
		return model.PredictionResult{}, &ApplicationError{
			StatusCode: status,
			Reason:     "prediction endpoint response is missing predicted_category",
		}
	}
	return model.PredictionResult{PredictedCategory: category}, nil
}

func newBreaker(cfg BreakerConfig, endpoint string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	if cfg.Name == "" {
		cfg.Name = "prediction-endpoint"
	}
	cfg.Name += " " + endpoint
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var appErr *ApplicationError
			if errors.As(err, &appErr) {
				return appErr.StatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
