package repository

import (
	"sync"

	"mortcalc/domain"
)

// PaymentRepositoryMemory is an in-memory implementation of PaymentRepository.
type PaymentRepositoryMemory struct {
	mu   sync.RWMutex
	data []Record
}

// NewPaymentRepositoryMemory creates a new in-memory payment repository.
func NewPaymentRepositoryMemory() *PaymentRepositoryMemory {
	return &PaymentRepositoryMemory{
		data: []Record{},
	}
}

// Save stores the calculation in memory.
func (r *PaymentRepositoryMemory) Save(
	input domain.PaymentInput,
	result domain.MonthlyPayment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, Record{Input: input, Result: result})
	return nil
}

// List returns a copy of every stored calculation, oldest first.
func (r *PaymentRepositoryMemory) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.data))
	copy(out, r.data)
	return out
}
