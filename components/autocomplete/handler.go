package autocomplete

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goliatone/go-insurepredict/pkg/catalog"
)

// Response is the JSON body served for a suggestion query.
type Response struct {
	Query string   `json:"query"`
	Data  []Option `json:"data"`
}

type handler struct {
	opts Options
}

// Handler serves suggestions for default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves suggestions for opts. Nil candidates resolve to
// the embedded city catalog on each request.
func HandlerWithOptions(opts Options) http.Handler {
	return &handler{opts: opts.normalise()}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	candidates := h.opts.Candidates
	if candidates == nil {
		cat, err := catalog.Default()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		candidates = CityCandidates(cat.Cities)
	}

	query := r.URL.Query()
	resp := Response{Query: query.Get(h.opts.SearchParam)}
	limit, _ := strconv.Atoi(query.Get(h.opts.LimitParam))
	resp.Data = SearchOptions(candidates, resp.Query, limit, h.opts)
	if resp.Data == nil {
		resp.Data = []Option{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}
