package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mortcalc/domain"
)

const (
	// DivisionPlaces is the number of decimal places kept by every division.
	DivisionPlaces = 28
	// PowerPlaces is the number of decimal places kept after each
	// multiplication while raising the growth factor.
	PowerPlaces = 40
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Calculator computes monthly payments under a subsidy policy.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	policy domain.SubsidyPolicy
}

// NewCalculator creates a Calculator that applies the given subsidy policy.
func NewCalculator(policy domain.SubsidyPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy returns the subsidy policy the calculator applies.
func (c *Calculator) Policy() domain.SubsidyPolicy {
	return c.policy
}

// CalculateMonthlyPayment calculates a payment with the default ASP policy.
func CalculateMonthlyPayment(
	annualInterestRate decimal.Decimal,
	numPayments int,
	principal decimal.Decimal,
	useSubsidy bool,
) (domain.MonthlyPayment, error) {
	return NewCalculator(domain.DefaultSubsidyPolicy()).Calculate(domain.PaymentInput{
		AnnualInterestRate: annualInterestRate,
		NumPayments:        numPayments,
		Principal:          principal,
		UseSubsidy:         useSubsidy,
	})
}

// Calculate returns the payment due each period for a fixed-rate loan.
//
// When the subsidy is requested and the rate is above the policy's soft cap,
// the borrower pays the capped payment plus the unsubsidized share of the
// interest above the cap.
func (c *Calculator) Calculate(input domain.PaymentInput) (domain.MonthlyPayment, error) {
	if err := validatePaymentInput(input); err != nil {
		return domain.MonthlyPayment{}, err
	}
	if err := c.policy.Validate(); err != nil {
		return domain.MonthlyPayment{}, err
	}

	monthly := input.AnnualInterestRate.DivRound(twelve, DivisionPlaces)
	flatPrincipal := input.Principal.DivRound(decimal.NewFromInt(int64(input.NumPayments)), DivisionPlaces)

	if monthly.IsZero() {
		return domain.MonthlyPayment{
			AmountPerMonth:   flatPrincipal,
			PrincipalPortion: flatPrincipal,
			InterestPortion:  decimal.Zero,
			AspSavings:       decimal.Zero,
		}, nil
	}

	paymentNoSubsidy := amortizedPayment(input.Principal, monthly, input.NumPayments)

	if input.UseSubsidy && input.AnnualInterestRate.GreaterThan(c.policy.SoftCapRate) {
		monthlySoftCap := c.policy.SoftCapRate.DivRound(twelve, DivisionPlaces)

		paymentAtSoftCap := flatPrincipal
		if !monthlySoftCap.IsZero() {
			paymentAtSoftCap = amortizedPayment(input.Principal, monthlySoftCap, input.NumPayments)
		}

		interestAtSoftCap := paymentAtSoftCap.Sub(flatPrincipal)
		interestNoSubsidy := paymentNoSubsidy.Sub(flatPrincipal)
		excessInterest := interestNoSubsidy.Sub(interestAtSoftCap)

		borrowerShare := one.Sub(c.policy.SubsidyFraction)
		payment := paymentAtSoftCap.Add(excessInterest.Mul(borrowerShare))

		return domain.MonthlyPayment{
			AmountPerMonth:   payment,
			PrincipalPortion: flatPrincipal,
			InterestPortion:  payment.Sub(flatPrincipal),
			AspSavings:       excessInterest.Mul(c.policy.SubsidyFraction),
		}, nil
	}

	return domain.MonthlyPayment{
		AmountPerMonth:   paymentNoSubsidy,
		PrincipalPortion: flatPrincipal,
		InterestPortion:  paymentNoSubsidy.Sub(flatPrincipal),
		AspSavings:       decimal.Zero,
	}, nil
}

func validatePaymentInput(input domain.PaymentInput) error {
	if input.NumPayments <= 0 {
		return fmt.Errorf("%w: number of payments must be positive, got %d", domain.ErrInvalidArgument, input.NumPayments)
	}
	if !input.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", domain.ErrInvalidArgument, input.Principal)
	}
	if input.AnnualInterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative, got %s", domain.ErrInvalidArgument, input.AnnualInterestRate)
	}
	return nil
}

// amortizedPayment is P * (r * (1+r)^n) / ((1+r)^n - 1). r must be non-zero.
func amortizedPayment(principal, periodicRate decimal.Decimal, numPayments int) decimal.Decimal {
	growth := powInt(one.Add(periodicRate), numPayments)
	return principal.Mul(
		periodicRate.Mul(growth).DivRound(growth.Sub(one), DivisionPlaces),
	)
}

// powInt raises base to a non-negative integer power by repeated squaring.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(PowerPlaces)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base).Round(PowerPlaces)
		}
	}
	return result
}
