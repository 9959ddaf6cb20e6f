package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID        string        `json:"id"`
	InvoiceID string        `json:"invoiceId"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	PaidAt    time.Time     `json:"paidAt"`
}
