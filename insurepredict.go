// Package insurepredict assembles the premium prediction form from resolved
// configuration: city catalog, derived-field calculator, prediction client,
// form views, the HTTP server and the terminal runner.
package insurepredict

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/internal/config"
	"github.com/goliatone/go-insurepredict/internal/server"
	"github.com/goliatone/go-insurepredict/internal/version"
	"github.com/goliatone/go-insurepredict/pkg/catalog"
	"github.com/goliatone/go-insurepredict/pkg/contract"
	"github.com/goliatone/go-insurepredict/pkg/derive"
	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/predict"
	"github.com/goliatone/go-insurepredict/pkg/prompt"
)

// App holds the shared collaborators. Views are per session and are created
// with NewView.
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Catalog     catalog.Catalog
	Cities      *autocomplete.Component
	Occupations *autocomplete.Component
	Calculator  *derive.Calculator
	Contract    *contract.Contract
	// Predictor posts to any http or https endpoint and backs the terminal
	// runner. ServePredictor only reaches the allowed endpoints and backs
	// the HTTP server, where visitors choose the endpoint.
	Predictor      *predict.Client
	ServePredictor *predict.Client
}

// New wires an App. A nil logger disables logging.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("insurepredict: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := loadCatalog(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	ct, err := contract.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("insurepredict: %w", err)
	}

	clientOpts := []predict.Option{
		predict.WithLogger(logger.Named("predict")),
		predict.WithContract(ct),
		predict.WithTimeout(cfg.Predict.Timeout),
	}
	if cfg.Predict.RateLimit > 0 {
		clientOpts = append(clientOpts, predict.WithRateLimit(cfg.Predict.RateLimit))
	}
	if cfg.Predict.Breaker.Enabled {
		clientOpts = append(clientOpts, predict.WithBreaker(predict.BreakerConfig{
			MaxFailures: cfg.Predict.Breaker.MaxFailures,
			OpenTimeout: cfg.Predict.Breaker.OpenTimeout,
		}))
	}

	allowed := servedEndpoints(cfg.Predict)
	if len(allowed) == 0 {
		logger.Warn("no prediction endpoint is allowed, form submissions from the server will be rejected")
	}
	policy, err := predict.AllowOnly(allowed...)
	if err != nil {
		return nil, fmt.Errorf("insurepredict: %w", err)
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		Catalog:        cat,
		Cities:         autocomplete.Cities(cat.Cities),
		Occupations:    autocomplete.Occupations(),
		Calculator:     derive.New(cat),
		Contract:       ct,
		Predictor:      predict.New(clientOpts...),
		ServePredictor: predict.New(append(clientOpts, predict.WithEndpointPolicy(policy))...),
	}, nil
}

func servedEndpoints(cfg config.PredictConfig) []string {
	if len(cfg.AllowedEndpoints) > 0 {
		return cfg.AllowedEndpoints
	}
	if endpoint := strings.TrimSpace(cfg.DefaultEndpoint); endpoint != "" {
		return []string{endpoint}
	}
	return nil
}

func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("insurepredict: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("insurepredict: %w", err)
	}
	return cat, nil
}

// NewView returns a fresh form view sharing the App's collaborators.
func (a *App) NewView(opts ...formview.Option) *formview.View {
	base := []formview.Option{
		formview.WithPredictor(a.Predictor),
		formview.WithCalculator(a.Calculator),
		formview.WithCities(a.Cities),
		formview.WithOccupations(a.Occupations),
		formview.WithEndpoint(a.Config.Predict.DefaultEndpoint),
		formview.WithLogger(a.Logger.Named("form")),
		formview.WithPhaseObserver(func(from, to formview.Phase) {
			a.Logger.Debug("form phase", zap.String("from", string(from)), zap.String("to", string(to)))
		}),
	}
	return formview.New(append(base, opts...)...)
}

// Server builds the HTTP server.
func (a *App) Server(ctx context.Context) (*server.Server, error) {
	return server.New(ctx, server.Config{
		Addr:          a.Config.Server.Addr,
		ShutdownGrace: a.Config.Server.ShutdownGrace,
		SessionTTL:    a.Config.Server.SessionTTL,
		SessionLimit:  a.Config.Server.SessionLimit,
		ThemeVariant:  a.Config.UI.ThemeVariant,
		Version:       version.Version,
	},
		server.WithLogger(a.Logger.Named("http")),
		server.WithViewFactory(func() *formview.View {
			return a.NewView(formview.WithPredictor(a.ServePredictor))
		}),
		server.WithCities(a.Cities),
		server.WithOccupations(a.Occupations),
		server.WithContract(a.Contract),
	)
}

// Runner builds the terminal runner over the App's autocomplete sources.
func (a *App) Runner(opts ...prompt.Option) *prompt.Runner {
	base := []prompt.Option{
		prompt.WithCities(a.Cities),
		prompt.WithOccupations(a.Occupations),
		prompt.WithLogger(a.Logger.Named("prompt")),
	}
	return prompt.New(append(base, opts...)...)
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv, err := a.Server(ctx)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// BreakerState reports the breaker state of the default endpoint.
func (a *App) BreakerState() string {
	return a.ServePredictor.BreakerState(a.Config.Predict.DefaultEndpoint)
}
