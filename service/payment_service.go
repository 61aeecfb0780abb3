package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"mortcalc/domain"
	"mortcalc/repository"
)

type PaymentService struct {
	calc  *Calculator
	repo  repository.PaymentRepository
	cache repository.CacheRepository
}

// NewPaymentService creates a PaymentService that records every calculation
// in repo and memoizes results in cache.
func NewPaymentService(
	calc *Calculator,
	repo repository.PaymentRepository,
	cache repository.CacheRepository,
) *PaymentService {
	return &PaymentService{calc: calc, repo: repo, cache: cache}
}

// Calculate validates the input against the service limits and returns the
// monthly payment, served from the cache when possible.
func (s *PaymentService) Calculate(
	ctx context.Context,
	input domain.PaymentInput,
) (domain.MonthlyPayment, error) {

	// Validar límites del servicio
	if input.Principal.GreaterThan(MaxPrincipal) {
		return domain.MonthlyPayment{}, fmt.Errorf("%w: principal exceeds the maximum of %s", domain.ErrInvalidArgument, MaxPrincipal)
	}
	if input.AnnualInterestRate.GreaterThan(MaxAnnualInterestRate) {
		return domain.MonthlyPayment{}, fmt.Errorf("%w: interest rate exceeds the maximum of %s", domain.ErrInvalidArgument, MaxAnnualInterestRate)
	}
	if input.NumPayments > MaxNumPayments {
		return domain.MonthlyPayment{}, fmt.Errorf("%w: number of payments exceeds the maximum of %d", domain.ErrInvalidArgument, MaxNumPayments)
	}

	key := s.cacheKey(input)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.MonthlyPayment
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		log.Printf("Warning: discarding unreadable cache entry %s", key)
	}

	result, err := s.calc.Calculate(input)
	if err != nil {
		return domain.MonthlyPayment{}, err
	}

	// Guardar en caché (no crítico si falla)
	if encoded, err := json.Marshal(result); err != nil {
		log.Printf("Warning: failed to encode payment for cache: %v", err)
	} else if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
		log.Printf("Warning: failed to cache payment calculation: %v", err)
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		log.Printf("Warning: failed to save payment calculation: %v", err)
	}

	return result, nil
}

// History returns every calculation recorded by the service.
func (s *PaymentService) History() []repository.Record {
	return s.repo.List()
}

func (s *PaymentService) cacheKey(input domain.PaymentInput) string {
	policy := s.calc.Policy()
	return strings.Join([]string{
		cacheKeyPrefix,
		input.AnnualInterestRate.String(),
		strconv.Itoa(input.NumPayments),
		input.Principal.String(),
		strconv.FormatBool(input.UseSubsidy),
		policy.SoftCapRate.String(),
		policy.SubsidyFraction.String(),
	}, ":")
}
