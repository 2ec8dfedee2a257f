package autocomplete

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := []struct {
		base string
		fns  []OptionFn
		want string
	}{
		{base: "/ui", want: "/ui/api/cities"},
		{base: "ui/", want: "/ui/api/cities"},
		{base: "", fns: []OptionFn{WithRoutePath("api/occupations")}, want: "/api/occupations"},
		{base: "/", fns: []OptionFn{WithRoutePath("")}, want: "/api/cities"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.fns...); got != tc.want {
			t.Fatalf("MountPath(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestRegisterRoutes_BothInstances(t *testing.T) {
	mux := http.NewServeMux()

	patterns, err := RegisterRoutes(mux, "/", Cities(sixCities), nil, Occupations())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"/api/cities", "/api/occupations"}, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}

	for _, target := range []string{patterns[0] + "?q=del", patterns[1] + "?q=job"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := Occupations().RegisterRoutes(mux, "/ui")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/ui/api/occupations" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/", Occupations()); !errors.Is(err, ErrMissingMux) {
		t.Fatalf("expected ErrMissingMux, got %v", err)
	}
	if _, err := Occupations().RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
