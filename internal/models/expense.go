package models

// Expense is an operating cost paid by the condominium.
type Expense struct {
	ID            int64   `json:"id"`
	ExpenseDate   Date    `json:"fecha_gasto"`
	Description   string  `json:"descripcion"`
	Amount        float64 `json:"monto"`
	Supplier      *string `json:"proveedor"`
	InvoiceNumber *string `json:"factura"`
	RecordedBy    string  `json:"registrado_por"`
}

// ExpenseColumns lists the exported columns, in the same order as Row.
var ExpenseColumns = []string{
	"id", "fecha_gasto", "descripcion", "monto", "proveedor", "factura", "registrado_por",
}

func (e Expense) Row() []any {
	return []any{
		e.ID, e.ExpenseDate.String(), e.Description, e.Amount,
		deref(e.Supplier), deref(e.InvoiceNumber), e.RecordedBy,
	}
}
