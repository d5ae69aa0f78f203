package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=income expense"`
	Category      string          `json:"category,omitempty" binding:"omitempty,max=60"`
	Description   string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    *time.Time      `json:"occurred_at,omitempty"`
	AppointmentID *int64          `json:"appointment_id,omitempty" binding:"omitempty,min=1"`
}

type TransactionItem struct {
	ID            int64  `json:"id"`
	AppointmentID *int64 `json:"appointment_id,omitempty"`
	Kind          string `json:"kind"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	OccurredAt    string `json:"occurred_at"`
}

// FinanceSummary totals income and expenses over a period.
type FinanceSummary struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
	Count   int    `json:"count"`
}
