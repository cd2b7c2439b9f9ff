package repository

import (
	"context"
	"database/sql"
	"fmt"

	"condo_ledger/internal/models"
)

type PaymentSQLite struct {
	db *sql.DB
}

func NewPaymentSQLite(db *sql.DB) *PaymentSQLite {
	return &PaymentSQLite{db: db}
}

var _ PaymentRepository = (*PaymentSQLite)(nil)

// PaymentTotals aggregates the payments table.
type PaymentTotals struct {
	Count int
	USD   float64
	BS    float64
}

const (
	insertPaymentSQL = `
		INSERT INTO payments (apartamento, fecha_pago, mes_cancelado, monto_usd, monto_bs, forma_pago, referencia, observaciones, registrado_por)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectPaymentsSQL = `SELECT id, apartamento, fecha_pago, mes_cancelado, monto_usd, monto_bs, forma_pago, referencia, observaciones, registrado_por FROM payments`
	paymentTotalsSQL  = `SELECT COUNT(*), COALESCE(SUM(monto_usd), 0), COALESCE(SUM(monto_bs), 0) FROM payments`
)

// Create inserts p and returns the id assigned by the store. p.ID is ignored.
func (r *PaymentSQLite) Create(ctx context.Context, p models.Payment) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPaymentSQL,
		p.Apartment,
		p.PaymentDate,
		p.MonthCovered,
		p.AmountUSD,
		p.AmountBS,
		p.PaymentMethod,
		nullString(p.Reference),
		nullString(p.Notes),
		p.RecordedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert payment for apartment %q: %w", p.Apartment, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for payment: %w", err)
	}
	return id, nil
}

// List returns every payment in the requested order.
func (r *PaymentSQLite) List(ctx context.Context, order Order) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, selectPaymentsSQL+orderClause(order))
	if err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	defer rows.Close()

	out := make([]models.Payment, 0, 64)
	for rows.Next() {
		var (
			p                models.Payment
			reference, notes sql.NullString
		)
		if err := rows.Scan(
			&p.ID,
			&p.Apartment,
			&p.PaymentDate,
			&p.MonthCovered,
			&p.AmountUSD,
			&p.AmountBS,
			&p.PaymentMethod,
			&reference,
			&notes,
			&p.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Reference = stringPtr(reference)
		p.Notes = stringPtr(notes)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return out, nil
}

func (r *PaymentSQLite) Totals(ctx context.Context) (PaymentTotals, error) {
	var t PaymentTotals
	if err := r.db.QueryRowContext(ctx, paymentTotalsSQL).Scan(&t.Count, &t.USD, &t.BS); err != nil {
		return PaymentTotals{}, fmt.Errorf("sum payments: %w", err)
	}
	return t, nil
}
