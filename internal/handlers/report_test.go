package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"condo_ledger/internal/service"
)

func TestReport_Download(t *testing.T) {
	reports := &mockReports{rep: service.Report{
		Filename: "Reporte_Condominio_2024-05-01.xlsx",
		Content:  []byte("PK\x03\x04fake"),
	}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/reporte-excel", nil), validToken))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != service.XLSXContentType {
		t.Fatalf("content-type=%q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=Reporte_Condominio_2024-05-01.xlsx" {
		t.Fatalf("content-disposition=%q", got)
	}
	if w.Body.String() != "PK\x03\x04fake" {
		t.Fatalf("unexpected body")
	}
	if reports.lastBy != testIdentity {
		t.Fatalf("Generate called with %+v", reports.lastBy)
	}
}

func TestReport_FailureIsServerError(t *testing.T) {
	reports := &mockReports{err: &service.ReportError{Err: errors.New("list payments: database is locked")}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/reporte-excel", nil), validToken))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["status"] != "error" || out["message"] != msgReportFailed+"list payments: database is locked" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestSummary_Get(t *testing.T) {
	sum := &mockSummary{}
	sum.sum.Payments = 3
	sum.sum.TotalUSD = 150
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Summary: sum})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/resumen", nil), validToken))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["pagos"] != float64(3) || out["total_usd"] != float64(150) {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
