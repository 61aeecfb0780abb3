package service

import (
	"context"
	"fmt"

	"mortcalc/domain"
)

type TermComparisonService struct {
	paymentService *PaymentService
}

func NewTermComparisonService(paymentService *PaymentService) *TermComparisonService {
	return &TermComparisonService{paymentService: paymentService}
}

// CompareTerms calculates the monthly payment for every term between
// MinPayments and MaxPayments inclusive, shortest term first.
func (s *TermComparisonService) CompareTerms(
	ctx context.Context,
	input domain.TermComparisonInput,
) ([]domain.TermComparison, error) {

	// Validaciones
	if input.MinPayments < MinNumPayments || input.MaxPayments < MinNumPayments {
		return nil, fmt.Errorf("%w: number of payments must be positive", domain.ErrInvalidArgument)
	}
	if input.MinPayments > input.MaxPayments {
		return nil, fmt.Errorf("%w: minimum payments %d exceeds maximum %d", domain.ErrInvalidArgument, input.MinPayments, input.MaxPayments)
	}
	if input.MaxPayments > MaxNumPayments {
		return nil, fmt.Errorf("%w: maximum payments exceeds the limit of %d", domain.ErrInvalidArgument, MaxNumPayments)
	}
	// Evitar rangos demasiado grandes
	if input.MaxPayments-input.MinPayments > MaxTermRangePayments {
		return nil, fmt.Errorf("%w: term range exceeds the maximum of %d payments", domain.ErrInvalidArgument, MaxTermRangePayments)
	}

	comparisons := make([]domain.TermComparison, 0, input.MaxPayments-input.MinPayments+1)
	for n := input.MinPayments; n <= input.MaxPayments; n++ {
		payment, err := s.paymentService.Calculate(ctx, domain.PaymentInput{
			AnnualInterestRate: input.AnnualInterestRate,
			NumPayments:        n,
			Principal:          input.Principal,
			UseSubsidy:         input.UseSubsidy,
		})
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, domain.TermComparison{
			NumPayments: n,
			Payment:     payment,
		})
	}

	return comparisons, nil
}
