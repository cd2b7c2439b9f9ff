package models

import "time"

// Summary aggregates the ledger.
type Summary struct {
	Payments      int       `json:"pagos"`
	Expenses      int       `json:"gastos"`
	TotalUSD      float64   `json:"total_usd"`
	TotalBS       float64   `json:"total_bs"`
	TotalExpenses float64   `json:"total_gastos"`
	UpdatedAt     time.Time `json:"actualizado"`
}
