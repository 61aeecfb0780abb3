package domain

import "github.com/shopspring/decimal"

type TermComparisonInput struct {
	AnnualInterestRate decimal.Decimal
	Principal          decimal.Decimal
	MinPayments        int
	MaxPayments        int
	UseSubsidy         bool
}

type TermComparison struct {
	NumPayments int            `json:"num_payments"`
	Payment     MonthlyPayment `json:"payment"`
}
