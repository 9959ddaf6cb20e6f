package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billio/internal/client/client"
	"github.com/dmitrijs2005/billio/internal/client/models"
	"github.com/dmitrijs2005/billio/internal/common"
)

// Authenticated reports whether a session is active.
type Authenticated interface {
	IsAuthenticated() bool
}

// DashboardService reads the protected lists and aggregates them. Every
// method fails with common.ErrNotLoggedIn when no session is active.
type DashboardService interface {
	Invoices(ctx context.Context) ([]models.Invoice, error)
	Clients(ctx context.Context) ([]models.Client, error)
	Payments(ctx context.Context) ([]models.Payment, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

type dashboardService struct {
	client client.Client
	auth   Authenticated
}

func NewDashboardService(client client.Client, auth Authenticated) DashboardService {
	return &dashboardService{client: client, auth: auth}
}

func (s *dashboardService) Invoices(ctx context.Context) ([]models.Invoice, error) {
	return guarded(ctx, s.auth, s.client.Invoices)
}

func (s *dashboardService) Clients(ctx context.Context) ([]models.Client, error) {
	return guarded(ctx, s.auth, s.client.Clients)
}

func (s *dashboardService) Payments(ctx context.Context) ([]models.Payment, error) {
	return guarded(ctx, s.auth, s.client.Payments)
}

func (s *dashboardService) Notifications(ctx context.Context) ([]models.Notification, error) {
	return guarded(ctx, s.auth, s.client.Notifications)
}

func guarded[T any](ctx context.Context, auth Authenticated, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if !auth.IsAuthenticated() {
		return nil, common.ErrNotLoggedIn
	}
	return fetch(ctx)
}

// Summary fetches invoices, clients and notifications and aggregates them.
// Paid money comes from invoices in the paid status.
func (s *dashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	invoices, err := s.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoices: %w", err)
	}
	clients, err := s.Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("clients: %w", err)
	}
	notifications, err := s.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("notifications: %w", err)
	}

	return Summarize(invoices, clients, notifications), nil
}

// Summarize builds a DashboardSummary from already fetched lists. Cancelled
// and draft invoices are counted by status but not billed.
func Summarize(invoices []models.Invoice, clients []models.Client, notifications []models.Notification) *models.DashboardSummary {
	sum := &models.DashboardSummary{
		InvoiceCount: len(invoices),
		ClientCount:  len(clients),
		ByStatus:     make(map[models.InvoiceStatus]int, len(models.InvoiceStatuses)),
	}

	for _, inv := range invoices {
		sum.ByStatus[inv.Status]++

		switch {
		case inv.Status == models.InvoiceStatusPaid:
			sum.TotalBilled += inv.Amount
			sum.TotalPaid += inv.Amount
		case inv.Outstanding():
			sum.TotalBilled += inv.Amount
			sum.Outstanding += inv.Amount
		}
	}

	if sum.TotalBilled > 0 {
		sum.PaidPercent = float64(sum.TotalPaid) * 100 / float64(sum.TotalBilled)
	}

	for _, n := range notifications {
		if !n.Read {
			sum.UnreadNotifications++
		}
	}
	return sum
}
