package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGIN", "PAYMENT_CREATED", ...
}

// PaymentInput is a payment as submitted by a client. Amounts stay textual
// until validation so that "", "12.50" and 12.5 are all accepted.
type PaymentInput struct {
	Apartment     string
	PaymentDate   string
	MonthCovered  string
	AmountUSD     string
	AmountBS      string
	PaymentMethod string
	Reference     *string
	Notes         *string
}

type ExpenseInput struct {
	ExpenseDate   string
	Description   string
	Amount        string
	Supplier      *string
	InvoiceNumber *string
}
