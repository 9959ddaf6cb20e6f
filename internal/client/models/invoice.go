package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceStatuses lists every status in display order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// Invoice amounts are in minor units (cents).
type Invoice struct {
	ID         string        `json:"id"`
	Number     string        `json:"number"`
	ClientID   string        `json:"clientId"`
	ClientName string        `json:"clientName"`
	Amount     int64         `json:"amount"`
	Currency   string        `json:"currency"`
	Status     InvoiceStatus `json:"status"`
	IssuedAt   time.Time     `json:"issuedAt"`
	DueAt      time.Time     `json:"dueAt"`
}

// Outstanding reports whether the invoice still expects a payment.
func (i Invoice) Outstanding() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
