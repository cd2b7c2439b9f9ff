package service

import (
	"context"
	"sync"
	"time"

	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
)

// In-memory repositories shared by the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []models.User
	getErr error
	addErr error
}

func (r *fakeUserRepo) Create(ctx context.Context, u models.User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return 0, r.addErr
	}
	u.ID = len(r.users) + 1
	r.users = append(r.users, u)
	return u.ID, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	purged   int
	err      error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]models.Session{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(r.sessions, id)
			n++
		}
	}
	r.purged += int(n)
	return n, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	rows     []models.Payment
	err      error
	gotOrder repository.Order
}

func (r *fakePaymentRepo) Create(ctx context.Context, p models.Payment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	p.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, p)
	return p.ID, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, order repository.Order) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gotOrder = order
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Payment, 0, len(r.rows))
	if order == repository.OldestFirst {
		out = append(out, r.rows...)
		return out, nil
	}
	for i := len(r.rows) - 1; i >= 0; i-- {
		out = append(out, r.rows[i])
	}
	return out, nil
}

func (r *fakePaymentRepo) Totals(ctx context.Context) (repository.PaymentTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return repository.PaymentTotals{}, r.err
	}
	t := repository.PaymentTotals{Count: len(r.rows)}
	for _, p := range r.rows {
		t.USD += p.AmountUSD
		t.BS += p.AmountBS
	}
	return t, nil
}

type fakeExpenseRepo struct {
	mu   sync.Mutex
	rows []models.Expense
	err  error
}

func (r *fakeExpenseRepo) Create(ctx context.Context, e models.Expense) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	e.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, e)
	return e.ID, nil
}

func (r *fakeExpenseRepo) List(ctx context.Context, order repository.Order) ([]models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Expense, 0, len(r.rows))
	if order == repository.OldestFirst {
		out = append(out, r.rows...)
		return out, nil
	}
	for i := len(r.rows) - 1; i >= 0; i-- {
		out = append(out, r.rows[i])
	}
	return out, nil
}

func (r *fakeExpenseRepo) Totals(ctx context.Context) (repository.ExpenseTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return repository.ExpenseTotals{}, r.err
	}
	t := repository.ExpenseTotals{Count: len(r.rows)}
	for _, e := range r.rows {
		t.Amount += e.Amount
	}
	return t, nil
}

// fakeEventRepo captures appended events and list parameters.
type fakeEventRepo struct {
	mu sync.Mutex

	appended  []models.LedgerEvent
	appendErr error

	gotFrom time.Time
	gotTo   time.Time
	gotType string
	events  []models.LedgerEvent
	listErr error
	calls   int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.LedgerEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.LedgerEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fixedClock returns a settable clock for deterministic expiry tests.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
