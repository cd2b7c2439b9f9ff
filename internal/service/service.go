package service

import (
	"context"
	"time"

	"condo_ledger/internal/logger"
	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
	"condo_ledger/internal/storage"
)

// Authorization covers login sessions and account management.
type Authorization interface {
	Login(ctx context.Context, username, password string) (Session, error)
	Logout(ctx context.Context, id models.Identity) error
	CheckSession(ctx context.Context, token string) SessionStatus
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	Bootstrap(ctx context.Context) ([]string, error)
	CreateUser(ctx context.Context, username, password string, role models.Role) (models.User, error)
}

// Ledger records and lists payments and expenses. Records are never updated or deleted.
type Ledger interface {
	AddPayment(ctx context.Context, by models.Identity, in PaymentInput) (models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	AddExpense(ctx context.Context, by models.Identity, in ExpenseInput) (models.Expense, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

// Reports exports the ledger as a spreadsheet.
type Reports interface {
	Generate(ctx context.Context, by models.Identity) (Report, error)
}

// Summary exposes ledger totals.
type Summary interface {
	GetSummary(ctx context.Context) (models.Summary, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.LedgerEvent, error)
	Record(ctx context.Context, e models.LedgerEvent) error
}

type Service struct {
	Authorization
	Ledger
	Reports
	Summary
	EventLog

	Janitor *SessionJanitor
}

// Options carries settings that do not come from the repository layer.
type Options struct {
	Auth     AuthConfig
	Archiver storage.Archiver // nil disables report archiving
	Log      *logger.Logger
	Now      func() time.Time
}

func NewService(repos *repository.Repository, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	eventLog := NewEventLogService(repos.Events, now)
	events := newEventRecorder(eventLog, log.Named("events"))

	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, events, opts.Auth, now),
		Ledger:        NewLedgerService(repos.Payments, repos.Expenses, events),
		Reports:       NewReportService(repos.Payments, repos.Expenses, events, opts.Archiver, log.Named("report"), now),
		Summary:       NewSummaryService(repos.Payments, repos.Expenses, now),
		EventLog:      eventLog,
		Janitor:       NewSessionJanitor(repos.Sessions, log.Named("sessions"), now),
	}
}
