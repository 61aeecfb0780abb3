package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"mortcalc/domain"
	"mortcalc/service"
)

// TermComparisonRequest is the body of POST /payment/compare-terms.
type TermComparisonRequest struct {
	InterestRate decimal.Decimal `json:"interest_rate"`
	Principal    decimal.Decimal `json:"principal"`
	MinPayments  int             `json:"min_payments"`
	MaxPayments  int             `json:"max_payments"`
	UseSubsidy   bool            `json:"use_subsidy"`
}

type TermComparisonHandler struct {
	service *service.TermComparisonService
}

func NewTermComparisonHandler(service *service.TermComparisonService) *TermComparisonHandler {
	return &TermComparisonHandler{service: service}
}

func (h *TermComparisonHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	if !acceptJSONPost(w, r) {
		return
	}

	var req TermComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CompareTerms(r.Context(), domain.TermComparisonInput{
		AnnualInterestRate: req.InterestRate.Div(hundred),
		Principal:          req.Principal,
		MinPayments:        req.MinPayments,
		MaxPayments:        req.MaxPayments,
		UseSubsidy:         req.UseSubsidy,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, result)
}
