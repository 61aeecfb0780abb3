package service

import "github.com/shopspring/decimal"

const (
	MaxNumPayments = 1200 // 100 años de pagos mensuales
	MinNumPayments = 1

	// Límite de plazos a comparar en una sola solicitud
	MaxTermRangePayments = 120

	cacheKeyPrefix = "mortcalc:payment"
)

var (
	MaxPrincipal          = decimal.NewFromInt(1_000_000_000) // mil millones
	MaxAnnualInterestRate = decimal.NewFromInt(10)            // 1000% anual, como fracción
)
