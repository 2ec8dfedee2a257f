package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/landing"
	"github.com/goliatone/go-insurepredict/pkg/model"
	"github.com/goliatone/go-insurepredict/pkg/render"
)

const maxFormBytes = 64 << 10

// postedFields are the text inputs a form post may carry, in edit order.
var postedFields = []string{
	model.FieldEndpoint,
	model.FieldAge,
	model.FieldHeight,
	model.FieldWeight,
	model.FieldIncomeLPA,
	model.FieldCity,
	model.FieldOccupationSearch,
	model.FieldOccupation,
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	s.writePage(w, r, render.LandingPage(landing.FromQuery(r.URL.Query())))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead, http.MethodPost) {
		return
	}
	view, _ := s.sessions.View(w, r)

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		s.applyForm(r, view)
	}

	s.writePage(w, r, render.PredictPage(view.Snapshot()))
}

// applyForm replays a form post as view operations. Only inputs whose value
// differs from the view are edited, so errors on untouched fields survive a
// dropdown selection.
func (s *Server) applyForm(r *http.Request, view *formview.View) {
	form := r.PostForm
	action := strings.TrimSpace(form.Get("action"))
	if action == "reset" {
		view.Reset()
		return
	}

	current := render.PredictPage(view.Snapshot()).Form
	for _, field := range postedFields {
		if _, ok := form[field]; !ok {
			continue
		}
		value := form.Get(field)
		if value == currentValue(current, field) {
			continue
		}
		if err := view.Edit(field, value); err != nil {
			s.logger.Warn("form edit rejected", zap.String("field", field), zap.Error(err))
		}
	}
	smoker := form.Get(model.FieldSmoker) != ""
	if smoker != current.Smoker {
		_ = view.Edit(model.FieldSmoker, form.Get(model.FieldSmoker))
	}

	switch {
	case form.Get("select_city") != "":
		view.SelectCity(form.Get("select_city"))
	case form.Get("select_occupation") != "":
		if err := view.SelectOccupation(form.Get("select_occupation")); err != nil {
			s.logger.Warn("occupation selection rejected", zap.Error(err))
		}
	case action == "submit":
		view.Click(formview.Target{})
		if err := view.Submit(r.Context()); err != nil {
			s.logger.Debug("submit finished with error", zap.Error(err))
		}
	}
}

func currentValue(form *render.Form, field string) string {
	switch field {
	case model.FieldEndpoint:
		return form.Endpoint
	case model.FieldOccupationSearch:
		return form.OccupationInput
	case model.FieldOccupation:
		return form.Occupation
	default:
		return form.Values[field]
	}
}

// Event is one UI interaction sent by the page script.
type Event struct {
	Type   string `json:"type"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Region string `json:"region,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	view, _ := s.sessions.View(w, r)

	var event Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := dec.Decode(&event); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	status, err := s.dispatch(r, view, event)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view.Snapshot())
}

var errUnknownEvent = errors.New("unknown event type")

func (s *Server) dispatch(r *http.Request, view *formview.View, event Event) (int, error) {
	switch event.Type {
	case "edit":
		if err := view.Edit(event.Field, event.Value); err != nil {
			return http.StatusBadRequest, err
		}
	case "focus":
		if err := view.Focus(event.Field); err != nil {
			return http.StatusBadRequest, err
		}
	case "select_city":
		view.SelectCity(event.Value)
	case "select_occupation":
		if err := view.SelectOccupation(event.Value); err != nil {
			return http.StatusBadRequest, err
		}
	case "click":
		var target formview.Target
		if event.Region != "" {
			target = formview.Target{formview.Region(event.Region)}
		}
		view.Click(target)
	case "reset":
		view.Reset()
	case "submit":
		if err := view.Submit(r.Context()); errors.Is(err, formview.ErrBusy) {
			return http.StatusConflict, err
		}
	default:
		return http.StatusBadRequest, errUnknownEvent
	}
	return http.StatusOK, nil
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.contract.Raw())
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Version: s.cfg.Version})
}

// writePage renders with the renderer named by ?format (html by default).
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, page render.Page) {
	renderer, err := s.registry.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, "unknown format", http.StatusNotFound)
		return
	}

	out, err := renderer.Render(r.Context(), page, render.RenderOptions{Variant: s.cfg.ThemeVariant})
	if err != nil {
		s.logger.Error("render page", zap.String("kind", string(page.Kind)), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func allowMethods(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	for _, method := range allowed {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
