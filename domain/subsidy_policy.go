package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// DefaultSoftCapRate is the annual rate above which the ASP subsidy applies.
	DefaultSoftCapRate = decimal.RequireFromString("0.038")
	// DefaultSubsidyFraction is the share of the interest above the soft cap
	// that the subsidy pays.
	DefaultSubsidyFraction = decimal.RequireFromString("0.7")
)

// SubsidyPolicy configures the ASP interest subsidy.
type SubsidyPolicy struct {
	SoftCapRate     decimal.Decimal
	SubsidyFraction decimal.Decimal
}

// DefaultSubsidyPolicy returns the current ASP terms: 70% of interest above 3.8%.
func DefaultSubsidyPolicy() SubsidyPolicy {
	return SubsidyPolicy{
		SoftCapRate:     DefaultSoftCapRate,
		SubsidyFraction: DefaultSubsidyFraction,
	}
}

// Validate reports whether the policy can be used for calculations.
func (p SubsidyPolicy) Validate() error {
	if p.SoftCapRate.IsNegative() {
		return fmt.Errorf("%w: soft cap rate must not be negative", ErrInvalidArgument)
	}
	if p.SubsidyFraction.IsNegative() || p.SubsidyFraction.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: subsidy fraction must be between 0 and 1", ErrInvalidArgument)
	}
	return nil
}
