package prefs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/slatetrack/slatetrack/internal/testutil"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	app := testutil.SetupTestApp(t)
	r := chi.NewRouter()
	r.Mount("/prefs", Routes(NewHandler(app, zap.NewNop())))
	return r
}

func TestThemeDefaultsToLight(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prefs/theme", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp themeBody
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Theme != "light" {
		t.Errorf("theme = %q, want light", resp.Theme)
	}
}

func TestSetTheme(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPut, "/prefs/theme", themeBody{Theme: "dark"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prefs/theme", nil))
	var resp themeBody
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Theme != "dark" {
		t.Errorf("theme = %q, want dark", resp.Theme)
	}
}

func TestSetUnknownThemeCoercesToLight(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPut, "/prefs/theme", themeBody{Theme: "solarized"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp themeBody
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Theme != "light" {
		t.Errorf("theme = %q, want light", resp.Theme)
	}
}
