package service

import (
	"context"
	"time"

	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
)

type SummaryService struct {
	payments repository.PaymentRepository
	expenses repository.ExpenseRepository
	now      func() time.Time
}

func NewSummaryService(payments repository.PaymentRepository, expenses repository.ExpenseRepository, now func() time.Time) *SummaryService {
	if now == nil {
		now = time.Now
	}
	return &SummaryService{payments: payments, expenses: expenses, now: now}
}

// GetSummary returns counts and sums over the whole ledger.
// An empty ledger yields a zero summary, not an error.
func (s *SummaryService) GetSummary(ctx context.Context) (models.Summary, error) {
	pt, err := s.payments.Totals(ctx)
	if err != nil {
		return models.Summary{}, storeErr("payment totals", err)
	}
	et, err := s.expenses.Totals(ctx)
	if err != nil {
		return models.Summary{}, storeErr("expense totals", err)
	}

	return models.Summary{
		Payments:      pt.Count,
		Expenses:      et.Count,
		TotalUSD:      pt.USD,
		TotalBS:       pt.BS,
		TotalExpenses: et.Amount,
		UpdatedAt:     normalizeToUTC(s.now()),
	}, nil
}
