package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mortcalc/domain"
	"mortcalc/repository"
	"mortcalc/service"
)

func newTestPaymentService() *service.PaymentService {
	return service.NewPaymentService(
		service.NewCalculator(domain.DefaultSubsidyPolicy()),
		repository.NewPaymentRepositoryMemory(),
		repository.NewMockCache(),
	)
}

func postJSON(path string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalculatePaymentHandler_OK(t *testing.T) {

	handler := NewPaymentHandler(newTestPaymentService())

	req := postJSON("/payment/calculate", `{
		"interest_rate": 6,
		"num_payments": 120,
		"principal": "100000",
		"use_subsidy": true
	}`)

	w := httptest.NewRecorder()

	handler.CalculatePayment(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.MonthlyPayment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if got := result.AmountPerMonth.StringFixed(2); got != "1035.14" {
		t.Errorf("expected 1035.14, got %s", got)
	}
	if got := result.AspSavings.StringFixed(2); got != "75.06" {
		t.Errorf("expected 75.06, got %s", got)
	}
}

func TestCalculatePaymentHandler_MethodNotAllowed(t *testing.T) {

	handler := NewPaymentHandler(newTestPaymentService())

	req := httptest.NewRequest(http.MethodGet, "/payment/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculatePayment(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculatePaymentHandler_UnsupportedMediaType(t *testing.T) {

	handler := NewPaymentHandler(newTestPaymentService())

	req := httptest.NewRequest(http.MethodPost, "/payment/calculate", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	handler.CalculatePayment(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestCalculatePaymentHandler_BadRequest(t *testing.T) {

	handler := NewPaymentHandler(newTestPaymentService())

	bodies := []string{
		`{invalid-json}`,
		`{"interest_rate": 5, "num_payments": 0, "principal": 1000}`,
		`{"interest_rate": -1, "num_payments": 12, "principal": 1000}`,
		`{"interest_rate": 5, "num_payments": 12, "principal": 0}`,
	}

	for _, body := range bodies {
		w := httptest.NewRecorder()
		handler.CalculatePayment(w, postJSON("/payment/calculate", body))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestCompareTermsHandler_OK(t *testing.T) {

	handler := NewTermComparisonHandler(service.NewTermComparisonService(newTestPaymentService()))

	req := postJSON("/payment/compare-terms", `{
		"interest_rate": "4.5",
		"principal": 161000,
		"min_payments": 228,
		"max_payments": 240,
		"use_subsidy": true
	}`)
	w := httptest.NewRecorder()

	handler.CompareTerms(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result []domain.TermComparison
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(result) != 13 {
		t.Errorf("expected 13 terms, got %d", len(result))
	}
}

func TestCompareTermsHandler_BadRange(t *testing.T) {

	handler := NewTermComparisonHandler(service.NewTermComparisonService(newTestPaymentService()))

	req := postJSON("/payment/compare-terms", `{"interest_rate": 4, "principal": 1000, "min_payments": 24, "max_payments": 12}`)
	w := httptest.NewRecorder()

	handler.CompareTerms(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
