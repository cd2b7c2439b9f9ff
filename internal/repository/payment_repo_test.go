package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"condo_ledger/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var paymentCols = []string{
	"id", "apartamento", "fecha_pago", "mes_cancelado", "monto_usd",
	"monto_bs", "forma_pago", "referencia", "observaciones", "registrado_por",
}

func TestPaymentSQLite_Create(t *testing.T) {
	ref := "000123"

	tests := []struct {
		name       string
		payment    models.Payment
		mockExpect func(sqlmock.Sqlmock)
		wantID     int64
		wantErr    string
	}{
		{
			name: "optional fields null",
			payment: models.Payment{
				Apartment:     "A1",
				PaymentDate:   models.NewDate(2025, time.January, 5),
				MonthCovered:  "Enero",
				AmountUSD:     50,
				PaymentMethod: "Zelle",
				RecordedBy:    "admin",
			},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertPaymentSQL)).
					WithArgs("A1", "2025-01-05", "Enero", 50.0, 0.0, "Zelle", nil, nil, "admin").
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			wantID: 11,
		},
		{
			name: "with reference",
			payment: models.Payment{
				Apartment:     "B2",
				PaymentDate:   models.NewDate(2025, time.February, 1),
				MonthCovered:  "Febrero",
				AmountBS:      1800.5,
				PaymentMethod: "Pago móvil",
				Reference:     &ref,
				RecordedBy:    "tesorero",
			},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertPaymentSQL)).
					WithArgs("B2", "2025-02-01", "Febrero", 0.0, 1800.5, "Pago móvil", "000123", nil, "tesorero").
					WillReturnResult(sqlmock.NewResult(12, 1))
			},
			wantID: 12,
		},
		{
			name:    "exec error",
			payment: models.Payment{Apartment: "C3"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertPaymentSQL)).
					WillReturnError(errors.New("database is locked"))
			},
			wantErr: "insert payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			repo := NewPaymentSQLite(db)
			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.payment)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("want id %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestPaymentSQLite_List_NewestFirst(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentSQLite(db)

	rows := sqlmock.NewRows(paymentCols).
		AddRow(2, "B2", "2025-02-01", "Febrero", 0.0, 1800.5, "Pago móvil", "000123", nil, "tesorero").
		AddRow(1, "A1", "2025-01-05", "Enero", 50.0, 0.0, "Zelle", nil, "pagó tarde", "admin")
	mock.ExpectQuery(regexp.QuoteMeta(selectPaymentsSQL + " ORDER BY id DESC")).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), NewestFirst)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Reference == nil || *got[0].Reference != "000123" || got[0].Notes != nil {
		t.Fatalf("optional fields not mapped: %+v", got[0])
	}
	if got[1].Reference != nil || got[1].Notes == nil || *got[1].Notes != "pagó tarde" {
		t.Fatalf("optional fields not mapped: %+v", got[1])
	}
	if got[1].PaymentDate.String() != "2025-01-05" {
		t.Fatalf("date not scanned: %v", got[1].PaymentDate)
	}
}

func TestPaymentSQLite_List_OldestFirst(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectPaymentsSQL + " ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(paymentCols))

	got, err := repo.List(context.Background(), OldestFirst)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestPaymentSQLite_List_ScanError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentSQLite(db)

	rows := sqlmock.NewRows(paymentCols).
		// malformed date forces a scan error
		AddRow(1, "A1", "05/01/2025", "Enero", 50.0, 0.0, "Zelle", nil, nil, "admin")
	mock.ExpectQuery(regexp.QuoteMeta(selectPaymentsSQL)).WillReturnRows(rows)

	if _, err := repo.List(context.Background(), NewestFirst); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}

func TestPaymentSQLite_Totals(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPaymentSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(paymentTotalsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "usd", "bs"}).AddRow(3, 150.5, 2000.0))

	got, err := repo.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got != (PaymentTotals{Count: 3, USD: 150.5, BS: 2000}) {
		t.Fatalf("unexpected totals: %+v", got)
	}
}
