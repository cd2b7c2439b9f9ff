package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"condo_ledger/internal/models"
	"condo_ledger/internal/service"
)

// ---- Service Mocks ----

var testIdentity = models.Identity{UserID: 1, Username: "admin", Role: models.RoleAdmin, SessionID: "sess-1"}

const validToken = "valid"

type mockAuth struct {
	loginSess service.Session
	loginErr  error
	logoutErr error
	authErr   error

	lastLoginUsername string
	lastLoginPassword string
	lastAuthToken     string
	logoutCalls       []models.Identity
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (service.Session, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginSess, m.loginErr
}

func (m *mockAuth) Logout(ctx context.Context, id models.Identity) error {
	m.logoutCalls = append(m.logoutCalls, id)
	return m.logoutErr
}

func (m *mockAuth) CheckSession(ctx context.Context, token string) service.SessionStatus {
	id, err := m.Authenticate(ctx, token)
	if err != nil {
		return service.SessionStatus{}
	}
	return service.SessionStatus{LoggedIn: true, Username: id.Username, Role: id.Role}
}

// Authenticate accepts only validToken.
func (m *mockAuth) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	m.lastAuthToken = token
	if m.authErr != nil {
		return models.Identity{}, m.authErr
	}
	if token != validToken {
		return models.Identity{}, service.ErrAuthRequired
	}
	return testIdentity, nil
}

func (m *mockAuth) Bootstrap(ctx context.Context) ([]string, error) { return nil, nil }

func (m *mockAuth) CreateUser(ctx context.Context, username, password string, role models.Role) (models.User, error) {
	return models.User{}, nil
}

type mockLedger struct {
	mu sync.Mutex

	payments   []models.Payment
	expenses   []models.Expense
	listErr    error
	addErr     error
	addedID    int64
	lastBy     models.Identity
	lastPay    *service.PaymentInput
	lastExp    *service.ExpenseInput
	addPayHits int
	addExpHits int
}

func (m *mockLedger) AddPayment(ctx context.Context, by models.Identity, in service.PaymentInput) (models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addPayHits++
	m.lastBy = by
	m.lastPay = &in
	if m.addErr != nil {
		return models.Payment{}, m.addErr
	}
	return models.Payment{ID: m.addedID, RecordedBy: by.Username}, nil
}

func (m *mockLedger) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return m.payments, m.listErr
}

func (m *mockLedger) AddExpense(ctx context.Context, by models.Identity, in service.ExpenseInput) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addExpHits++
	m.lastBy = by
	m.lastExp = &in
	if m.addErr != nil {
		return models.Expense{}, m.addErr
	}
	return models.Expense{ID: m.addedID, RecordedBy: by.Username}, nil
}

func (m *mockLedger) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return m.expenses, m.listErr
}

type mockReports struct {
	rep    service.Report
	err    error
	lastBy models.Identity
}

func (m *mockReports) Generate(ctx context.Context, by models.Identity) (service.Report, error) {
	m.lastBy = by
	return m.rep, m.err
}

type mockSummary struct {
	sum models.Summary
	err error
}

func (m *mockSummary) GetSummary(ctx context.Context) (models.Summary, error) {
	return m.sum, m.err
}

type mockEventLog struct {
	resp     []models.LedgerEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.LedgerEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

func (m *mockEventLog) Record(ctx context.Context, e models.LedgerEvent) error { return nil }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{AllowedOrigins: []string{"https://condominio.example"}})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request, token string) *http.Request {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
