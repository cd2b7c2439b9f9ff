package models

// Payment is money received from an apartment unit.
type Payment struct {
	ID            int64   `json:"id"`
	Apartment     string  `json:"apartamento"`
	PaymentDate   Date    `json:"fecha_pago"`
	MonthCovered  string  `json:"mes_cancelado"` // free text, e.g. "Enero 2025"
	AmountUSD     float64 `json:"monto_usd"`
	AmountBS      float64 `json:"monto_bs"`
	PaymentMethod string  `json:"forma_pago"`
	Reference     *string `json:"referencia"`
	Notes         *string `json:"observaciones"`
	RecordedBy    string  `json:"registrado_por"`
}

// PaymentColumns lists the exported columns, in the same order as Row.
var PaymentColumns = []string{
	"id", "apartamento", "fecha_pago", "mes_cancelado", "monto_usd",
	"monto_bs", "forma_pago", "referencia", "observaciones", "registrado_por",
}

// Row flattens the payment for tabular export.
func (p Payment) Row() []any {
	return []any{
		p.ID, p.Apartment, p.PaymentDate.String(), p.MonthCovered, p.AmountUSD,
		p.AmountBS, p.PaymentMethod, deref(p.Reference), deref(p.Notes), p.RecordedBy,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
