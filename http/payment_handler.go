package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"mortcalc/domain"
	"mortcalc/service"
)

var hundred = decimal.NewFromInt(100)

// PaymentRequest is the body of POST /payment/calculate.
// InterestRate is a percentage, e.g. 3.8.
type PaymentRequest struct {
	InterestRate decimal.Decimal `json:"interest_rate"`
	NumPayments  int             `json:"num_payments"`
	Principal    decimal.Decimal `json:"principal"`
	UseSubsidy   bool            `json:"use_subsidy"`
}

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) CalculatePayment(w http.ResponseWriter, r *http.Request) {

	if !acceptJSONPost(w, r) {
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Calculate(r.Context(), domain.PaymentInput{
		AnnualInterestRate: req.InterestRate.Div(hundred),
		NumPayments:        req.NumPayments,
		Principal:          req.Principal,
		UseSubsidy:         req.UseSubsidy,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, result)
}

// acceptJSONPost rejects anything but a JSON POST and reports whether the
// request may proceed.
func acceptJSONPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidArgument) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Error calculating payment: %v", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
