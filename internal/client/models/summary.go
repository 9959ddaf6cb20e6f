package models

// DashboardSummary aggregates the dashboard lists. Money fields are minor
// units; PaidPercent is paid/billed in [0,100], 0 when nothing was billed.
type DashboardSummary struct {
	InvoiceCount        int
	ClientCount         int
	TotalBilled         int64
	TotalPaid           int64
	Outstanding         int64
	PaidPercent         float64
	ByStatus            map[InvoiceStatus]int
	UnreadNotifications int
}
