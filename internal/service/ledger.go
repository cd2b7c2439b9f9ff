package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"condo_ledger/internal/metrics"
	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
)

type LedgerService struct {
	payments repository.PaymentRepository
	expenses repository.ExpenseRepository
	events   *eventRecorder
}

func NewLedgerService(payments repository.PaymentRepository, expenses repository.ExpenseRepository, events *eventRecorder) *LedgerService {
	return &LedgerService{payments: payments, expenses: expenses, events: events}
}

func (s *LedgerService) AddPayment(ctx context.Context, by models.Identity, in PaymentInput) (models.Payment, error) {
	p, err := validatePayment(in)
	if err != nil {
		return models.Payment{}, err
	}
	p.RecordedBy = by.Username

	p.ID, err = s.payments.Create(ctx, p)
	if err != nil {
		return models.Payment{}, storeErr("create payment", err)
	}

	metrics.ObserveRecord(metrics.KindPayment)
	s.events.record(ctx, models.EventPaymentCreated, by.Username, "payment recorded", map[string]any{
		"id":          p.ID,
		"apartamento": p.Apartment,
		"monto_usd":   p.AmountUSD,
		"monto_bs":    p.AmountBS,
	})
	return p, nil
}

func (s *LedgerService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	out, err := s.payments.List(ctx, repository.NewestFirst)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	return out, nil
}

func (s *LedgerService) AddExpense(ctx context.Context, by models.Identity, in ExpenseInput) (models.Expense, error) {
	e, err := validateExpense(in)
	if err != nil {
		return models.Expense{}, err
	}
	e.RecordedBy = by.Username

	e.ID, err = s.expenses.Create(ctx, e)
	if err != nil {
		return models.Expense{}, storeErr("create expense", err)
	}

	metrics.ObserveRecord(metrics.KindExpense)
	s.events.record(ctx, models.EventExpenseCreated, by.Username, "expense recorded", map[string]any{
		"id":    e.ID,
		"monto": e.Amount,
	})
	return e, nil
}

func (s *LedgerService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	out, err := s.expenses.List(ctx, repository.NewestFirst)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	return out, nil
}

// Field names below are the request keys clients send, so a ValidationError
// points at what to fix.

func validatePayment(in PaymentInput) (models.Payment, error) {
	var p models.Payment
	var err error

	if p.Apartment, err = required("apto", in.Apartment); err != nil {
		return p, err
	}
	if p.PaymentDate, err = parseDate("payment-date", in.PaymentDate); err != nil {
		return p, err
	}
	if p.MonthCovered, err = required("month-paid", in.MonthCovered); err != nil {
		return p, err
	}
	if p.AmountUSD, err = parseAmount("amount-usd", in.AmountUSD, false); err != nil {
		return p, err
	}
	if p.AmountBS, err = parseAmount("amount-bs", in.AmountBS, false); err != nil {
		return p, err
	}
	if p.PaymentMethod, err = required("payment-method", in.PaymentMethod); err != nil {
		return p, err
	}
	p.Reference = optional(in.Reference)
	p.Notes = optional(in.Notes)
	return p, nil
}

func validateExpense(in ExpenseInput) (models.Expense, error) {
	var e models.Expense
	var err error

	if e.ExpenseDate, err = parseDate("expense-date", in.ExpenseDate); err != nil {
		return e, err
	}
	if e.Description, err = required("description", in.Description); err != nil {
		return e, err
	}
	if e.Amount, err = parseAmount("amount", in.Amount, true); err != nil {
		return e, err
	}
	e.Supplier = optional(in.Supplier)
	e.InvoiceNumber = optional(in.InvoiceNumber)
	return e, nil
}

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, msgRequired)
	}
	return v, nil
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(field, v string) (models.Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.Date{}, invalid(field, msgRequired)
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}, invalid(field, "debe ser una fecha con formato AAAA-MM-DD")
	}
	return d, nil
}

// Amounts must fit comfortably in a float64 column: at most this many
// integer digits and this many decimals.
const (
	maxAmountIntDigits  = 15
	maxAmountFracDigits = 10
)

// parseAmount reads a non-negative decimal. An empty optional amount is zero.
func parseAmount(field, v string, isRequired bool) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		if isRequired {
			return 0, invalid(field, msgRequired)
		}
		return 0, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, invalid(field, "debe ser un número")
	}
	if d.IsNegative() {
		return 0, invalid(field, "no puede ser negativo")
	}
	if d.IsZero() {
		return 0, nil
	}
	// bound the exponent before converting; 1e999999999 parses fine
	exp := int(d.Exponent())
	if d.NumDigits()+exp > maxAmountIntDigits || -exp > maxAmountFracDigits {
		return 0, invalid(field, msgOutOfRange)
	}
	return d.InexactFloat64(), nil
}
