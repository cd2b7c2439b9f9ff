package repository

import (
	"context"
	"database/sql"
	"time"

	"condo_ledger/internal/models"
)

// Order selects how ledger rows are returned.
type Order int

const (
	// NewestFirst sorts by id descending (listing endpoints).
	NewestFirst Order = iota
	// OldestFirst sorts by id ascending, i.e. insertion order (exports).
	OldestFirst
)

type UserRepository interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p models.Payment) (int64, error)
	List(ctx context.Context, order Order) ([]models.Payment, error)
	Totals(ctx context.Context) (PaymentTotals, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e models.Expense) (int64, error)
	List(ctx context.Context, order Order) ([]models.Expense, error)
	Totals(ctx context.Context) (ExpenseTotals, error)
}

type EventRepository interface {
	Append(ctx context.Context, e models.LedgerEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.LedgerEvent, error)
}

type Repository struct {
	Users    UserRepository
	Sessions SessionRepository
	Payments PaymentRepository
	Expenses ExpenseRepository
	Events   EventRepository
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Sessions: NewSessionSQLite(db),
		Payments: NewPaymentSQLite(db),
		Expenses: NewExpenseSQLite(db),
		Events:   NewEventSQLite(db),
	}
}

// timestampLayout matches SQLite's CURRENT_TIMESTAMP so text comparisons order correctly.
const timestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func orderClause(o Order) string {
	if o == OldestFirst {
		return " ORDER BY id ASC"
	}
	return " ORDER BY id DESC"
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
