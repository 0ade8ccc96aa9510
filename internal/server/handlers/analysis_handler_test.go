package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/ranch/internal/domain/models"
	"github.com/mamadbah2/ranch/internal/service/analysis"
	"github.com/mamadbah2/ranch/internal/service/export"
	"github.com/mamadbah2/ranch/internal/service/profitability"
)

type fakeService struct {
	runErr    error
	record    *models.AnalysisRecord
	records   []models.AnalysisRecord
	exportOut []byte
	lastLimit int
	lastFarm  string
}

func (f *fakeService) Validate(data models.LivestockData, _ models.LocaleConfig) models.ValidationResult {
	if data.FarmID == "" {
		return models.ValidationResult{Valid: false, Errors: []models.ValidationIssue{{Code: "REQUIRED_FIELD", Field: "farmId", Severity: models.SeverityError}}}
	}
	return models.ValidationResult{Valid: true, Errors: []models.ValidationIssue{}}
}

func (f *fakeService) Run(_ context.Context, data models.LivestockData, _ models.LocaleConfig) (*models.AnalysisRecord, error) {
	if f.runErr != nil {
		return nil, f.runErr
	}
	if f.record != nil {
		return f.record, nil
	}
	return &models.AnalysisRecord{ID: "a-1", FarmID: data.FarmID, Result: &models.ProfitabilityResult{NetProfit: 10}}, nil
}

func (f *fakeService) Get(_ context.Context, id string) (*models.AnalysisRecord, error) {
	if id != "a-1" {
		return nil, analysis.ErrNotFound
	}
	return &models.AnalysisRecord{ID: id, FarmID: "farm-1"}, nil
}

func (f *fakeService) ListByFarm(_ context.Context, farmID string, limit int) ([]models.AnalysisRecord, error) {
	f.lastFarm = farmID
	f.lastLimit = limit
	return f.records, nil
}

func (f *fakeService) Export(_ context.Context, id string, _ export.Format) ([]byte, error) {
	if id != "a-1" {
		return nil, analysis.ErrNotFound
	}
	return f.exportOut, nil
}

func newTestRouter(svc analysis.AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalysisHandler(svc, nil)
	r := gin.New()
	r.POST("/analyses/validate", h.Validate)
	r.POST("/analyses", h.Create)
	r.GET("/analyses/:id", h.Get)
	r.GET("/analyses/:id/export", h.Export)
	r.GET("/farms/:farmId/analyses", h.ListByFarm)
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalysisHandler_Create(t *testing.T) {
	validation := models.ValidationResult{Valid: false, Errors: []models.ValidationIssue{{Code: "OUT_OF_RANGE", Field: "salePrice"}}}

	tests := []struct {
		name       string
		body       string
		svc        *fakeService
		wantStatus int
		wantBody   string
	}{
		{"created", `{"data":{"farmId":"farm-1"},"locale":{"country":"CO"}}`, &fakeService{}, http.StatusCreated, `"id":"a-1"`},
		{"cache hit", `{"data":{"farmId":"farm-1"}}`, &fakeService{record: &models.AnalysisRecord{ID: "a-9", CacheHit: true}}, http.StatusOK, `"cacheHit":true`},
		{"bad json", `{"data":`, &fakeService{}, http.StatusBadRequest, "invalid request body"},
		{"validation", `{"data":{}}`, &fakeService{runErr: &profitability.ValidationFailedError{Result: validation}}, http.StatusUnprocessableEntity, "OUT_OF_RANGE"},
		{"domain", `{"data":{}}`, &fakeService{runErr: &profitability.DomainError{Metric: "totalDays", Reason: "short", Err: profitability.ErrInvalidDomain}}, http.StatusUnprocessableEntity, "totalDays"},
		{"strict metric", `{"data":{}}`, &fakeService{runErr: profitability.ErrUndefinedMetric}, http.StatusUnprocessableEntity, "undefined"},
		{"internal", `{"data":{}}`, &fakeService{runErr: errors.New("mongo down")}, http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(newTestRouter(tt.svc), http.MethodPost, "/analyses", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not contain %q", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "mongo down") {
				t.Errorf("internal error leaked: %s", w.Body.String())
			}
		})
	}
}

func TestAnalysisHandler_Validate(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := perform(r, http.MethodPost, "/analyses/validate", `{"data":{}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got models.ValidationResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Valid || len(got.Errors) != 1 || got.Errors[0].Field != "farmId" {
		t.Errorf("unexpected result %+v", got)
	}

	if w := perform(r, http.MethodPost, "/analyses/validate", "not json"); w.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", w.Code)
	}
}

func TestAnalysisHandler_Get(t *testing.T) {
	r := newTestRouter(&fakeService{})

	if w := perform(r, http.MethodGet, "/analyses/a-1", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"farmId":"farm-1"`) {
		t.Errorf("get: status %d body %s", w.Code, w.Body.String())
	}
	if w := perform(r, http.MethodGet, "/analyses/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing: status %d", w.Code)
	}
}

func TestAnalysisHandler_ListByFarm(t *testing.T) {
	svc := &fakeService{records: []models.AnalysisRecord{{ID: "a-1"}, {ID: "a-2"}}}
	r := newTestRouter(svc)

	w := perform(r, http.MethodGet, "/farms/farm-7/analyses?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.lastFarm != "farm-7" || svc.lastLimit != 5 {
		t.Errorf("service called with farm=%q limit=%d", svc.lastFarm, svc.lastLimit)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Count != 2 {
		t.Errorf("count = %d, err %v", body.Count, err)
	}

	for _, limit := range []string{"abc", "-1"} {
		if w := perform(r, http.MethodGet, "/farms/farm-7/analyses?limit="+limit, ""); w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status %d", limit, w.Code)
		}
	}
}

func TestAnalysisHandler_Export(t *testing.T) {
	svc := &fakeService{exportOut: []byte("metric,value\n")}
	r := newTestRouter(svc)

	w := perform(r, http.MethodGet, "/analyses/a-1/export?format=csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != export.FormatCSV.ContentType() {
		t.Errorf("content type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "analysis-a-1.csv") {
		t.Errorf("content disposition = %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), svc.exportOut) {
		t.Errorf("body = %q", w.Body.String())
	}

	if w := perform(r, http.MethodGet, "/analyses/a-1/export?format=docx", ""); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d", w.Code)
	}
	if w := perform(r, http.MethodGet, "/analyses/nope/export", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", w.Code)
	}
}
