package repository

import (
	"context"
	"database/sql"
	"fmt"

	"condo_ledger/internal/models"
)

type ExpenseSQLite struct {
	db *sql.DB
}

func NewExpenseSQLite(db *sql.DB) *ExpenseSQLite {
	return &ExpenseSQLite{db: db}
}

var _ ExpenseRepository = (*ExpenseSQLite)(nil)

// ExpenseTotals aggregates the expenses table.
type ExpenseTotals struct {
	Count  int
	Amount float64
}

const (
	insertExpenseSQL = `
		INSERT INTO expenses (fecha_gasto, descripcion, monto, proveedor, factura, registrado_por)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectExpensesSQL = `SELECT id, fecha_gasto, descripcion, monto, proveedor, factura, registrado_por FROM expenses`
	expenseTotalsSQL  = `SELECT COUNT(*), COALESCE(SUM(monto), 0) FROM expenses`
)

// Create inserts e and returns the id assigned by the store. e.ID is ignored.
func (r *ExpenseSQLite) Create(ctx context.Context, e models.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.ExpenseDate,
		e.Description,
		e.Amount,
		nullString(e.Supplier),
		nullString(e.InvoiceNumber),
		e.RecordedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense %q: %w", e.Description, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for expense: %w", err)
	}
	return id, nil
}

// List returns every expense in the requested order.
func (r *ExpenseSQLite) List(ctx context.Context, order Order) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpensesSQL+orderClause(order))
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, 64)
	for rows.Next() {
		var (
			e                 models.Expense
			supplier, invoice sql.NullString
		)
		if err := rows.Scan(
			&e.ID,
			&e.ExpenseDate,
			&e.Description,
			&e.Amount,
			&supplier,
			&invoice,
			&e.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Supplier = stringPtr(supplier)
		e.InvoiceNumber = stringPtr(invoice)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *ExpenseSQLite) Totals(ctx context.Context) (ExpenseTotals, error) {
	var t ExpenseTotals
	if err := r.db.QueryRowContext(ctx, expenseTotalsSQL).Scan(&t.Count, &t.Amount); err != nil {
		return ExpenseTotals{}, fmt.Errorf("sum expenses: %w", err)
	}
	return t, nil
}
