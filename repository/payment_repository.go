package repository

import "mortcalc/domain"

// Record is one stored calculation.
type Record struct {
	Input  domain.PaymentInput
	Result domain.MonthlyPayment
}

type PaymentRepository interface {
	Save(input domain.PaymentInput, result domain.MonthlyPayment) error
	List() []Record
}
