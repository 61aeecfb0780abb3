package domain

import "github.com/shopspring/decimal"

// PaymentInput holds the four values a payment calculation needs.
// AnnualInterestRate is a fraction: 0.038 means 3.8%.
type PaymentInput struct {
	AnnualInterestRate decimal.Decimal
	NumPayments        int
	Principal          decimal.Decimal
	UseSubsidy         bool
}

// MonthlyPayment is the result of a single calculation.
//
// PrincipalPortion is the flat principal/numPayments share, not the
// amortizing principal of a particular period.
type MonthlyPayment struct {
	AmountPerMonth   decimal.Decimal `json:"amount_per_month"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	AspSavings       decimal.Decimal `json:"asp_savings"`
}
