package server

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/landing"
	"github.com/goliatone/go-insurepredict/pkg/render"
)

const (
	eventsPath   = landing.PredictPath + "/events"
	contractPath = "/openapi.yaml"
	healthPath   = "/healthz"
	assetsPath   = "/assets/"
)

func (s *Server) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc(landing.PredictPath, s.handlePredict)
	mux.HandleFunc(eventsPath, s.handleEvents)
	mux.HandleFunc(contractPath, s.handleContract)
	mux.HandleFunc(healthPath, s.handleHealth)
	mux.Handle(assetsPath, render.AssetHandler("/assets"))

	if _, err := autocomplete.RegisterRoutes(mux, "", s.cities, s.occupations); err != nil {
		return nil, fmt.Errorf("server: autocomplete routes: %w", err)
	}
	return mux, nil
}
