package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/billio/internal/client/models"
)

func (a *App) table(fn func(w io.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fn(w)
	_ = w.Flush()
}

func (a *App) Invoices(ctx context.Context) error {
	invoices, err := a.dashboard.Invoices(ctx)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		fmt.Fprintln(a.out, "No invoices.")
		return nil
	}

	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "NUMBER\tCLIENT\tAMOUNT\tSTATUS\tISSUED\tDUE")
		for _, inv := range invoices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				inv.Number, inv.ClientName, formatMoney(inv.Amount, inv.Currency), inv.Status,
				formatDate(inv.IssuedAt), formatDate(inv.DueAt))
		}
	})
	return nil
}

func (a *App) Clients(ctx context.Context) error {
	clients, err := a.dashboard.Clients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients.")
		return nil
	}

	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "NAME\tCOMPANY\tEMAIL")
		for _, c := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Company, c.Email)
		}
	})
	return nil
}

func (a *App) Payments(ctx context.Context) error {
	payments, err := a.dashboard.Payments(ctx)
	if err != nil {
		return err
	}
	if len(payments) == 0 {
		fmt.Fprintln(a.out, "No payments.")
		return nil
	}

	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tINVOICE\tAMOUNT\tMETHOD\tSTATUS\tPAID")
		for _, p := range payments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.InvoiceID, formatMoney(p.Amount, p.Currency), p.Method, p.Status, formatDate(p.PaidAt))
		}
	})
	return nil
}

func (a *App) Notifications(ctx context.Context) error {
	notifications, err := a.dashboard.Notifications(ctx)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}

	for _, n := range notifications {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s (%s)\n", mark, n.Title, humanize.Time(n.CreatedAt))
		if n.Message != "" {
			fmt.Fprintf(a.out, "  %s\n", n.Message)
		}
	}
	return nil
}

// Dashboard prints the aggregated overview.
func (a *App) Dashboard(ctx context.Context) error {
	sum, err := a.dashboard.Summary(ctx)
	if err != nil {
		return err
	}

	a.table(func(w io.Writer) {
		fmt.Fprintf(w, "Invoices:\t%d\n", sum.InvoiceCount)
		fmt.Fprintf(w, "Clients:\t%d\n", sum.ClientCount)
		fmt.Fprintf(w, "Billed:\t%s\n", formatMoney(sum.TotalBilled, ""))
		fmt.Fprintf(w, "Paid:\t%s (%.1f%%)\n", formatMoney(sum.TotalPaid, ""), sum.PaidPercent)
		fmt.Fprintf(w, "Outstanding:\t%s\n", formatMoney(sum.Outstanding, ""))
		fmt.Fprintf(w, "Unread notifications:\t%d\n", sum.UnreadNotifications)
	})

	parts := make([]string, 0, len(models.InvoiceStatuses))
	for _, st := range models.InvoiceStatuses {
		if n := sum.ByStatus[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", st, n))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(a.out, "By status: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

// formatMoney renders minor units with thousands separators, e.g. 123456 as
// "1,234.56 EUR".
func formatMoney(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	s := fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(minor/100), minor%100)
	if currency != "" {
		s += " " + strings.ToUpper(currency)
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}
