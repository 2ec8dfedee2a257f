package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/pkg/formview"
)

// SessionCookie names the cookie that binds a browser to its form view.
const SessionCookie = "insurepredict_session"

// Sessions keeps one form view per browser. Views expire after ttl without
// use or when the store is full; an expired view is the same as an unmounted
// form, so the next request starts from a fresh one.
type Sessions struct {
	views   *expirable.LRU[string, *formview.View]
	newView func() *formview.View
	ttl     time.Duration
}

func newSessions(limit int, ttl time.Duration, newView func() *formview.View, logger *zap.Logger) *Sessions {
	onEvict := func(id string, _ *formview.View) {
		logger.Debug("session closed", zap.String("session", id))
	}
	return &Sessions{
		views:   expirable.NewLRU[string, *formview.View](limit, onEvict, ttl),
		newView: newView,
		ttl:     ttl,
	}
}

// View returns the caller's view, creating one and setting the cookie when
// the request has no live session.
func (s *Sessions) View(w http.ResponseWriter, r *http.Request) (*formview.View, string) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if view, ok := s.views.Get(cookie.Value); ok {
			s.views.Add(cookie.Value, view)
			return view, cookie.Value
		}
	}

	id := uuid.NewString()
	view := s.newView()
	s.views.Add(id, view)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return view, id
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	return s.views.Len()
}
