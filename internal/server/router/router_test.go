package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/server/handlers"
	"github.com/mamadbah2/ranch/internal/service/analysis"
)

func TestNew_Routes(t *testing.T) {
	svc := analysis.NewService(analysis.Dependencies{}, zap.NewNop())
	r := New(handlers.NewAnalysisHandler(svc, zap.NewNop()), zap.NewNop())

	want := map[string]bool{
		"GET /healthz":                       false,
		"POST /api/v1/analyses/validate":     false,
		"POST /api/v1/analyses":              false,
		"GET /api/v1/analyses/:id":           false,
		"GET /api/v1/analyses/:id/export":    false,
		"GET /api/v1/farms/:farmId/analyses": false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, seen := range want {
		if !seen {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestNew_Healthz(t *testing.T) {
	r := New(handlers.NewAnalysisHandler(nil, nil), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestNew_ValidateRejectsEmptyBody(t *testing.T) {
	svc := analysis.NewService(analysis.Dependencies{}, zap.NewNop())
	r := New(handlers.NewAnalysisHandler(svc, nil), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/validate", nil)
	req.Body = http.NoBody
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
