package tui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
	"github.com/georgemunganga/printa-orders/internal/pkg/money"
)

func (a App) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "Printa Orders")
	fmt.Fprintln(b, "")

	if a.busy != "" {
		fmt.Fprintln(b, a.busy)
		return b.String()
	}

	switch a.screen {
	case screenEditor:
		a.viewEditor(b)
	case screenProducts:
		a.viewProducts(b)
	default:
		a.viewOrders(b)
	}

	fmt.Fprintln(b, "")
	if a.notice.Visible() {
		fmt.Fprintf(b, "%s: %s\n", strings.ToUpper(a.notice.Kind.String()), a.notice.Message)
	}
	switch {
	case a.confirm != nil:
		fmt.Fprintln(b, a.confirm.question)
	case a.prompt != nil:
		fmt.Fprintf(b, "%s: %s_\n", a.prompt.label, a.prompt.value)
	}
	return b.String()
}

func marker(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func (a App) viewOrders(b *strings.Builder) {
	fmt.Fprintln(b, "My Orders")
	fmt.Fprintln(b, "")
	writeOrders(b, a.list.Rows(), a.cursor, true)
	fmt.Fprintln(b, "\nControls: up/down select, n new, e edit, s/S status, d delete, p products, r reload, q quit")
}

func (a App) viewEditor(b *strings.Builder) {
	e := a.editor
	title := "Add Order"
	if e.Mode() == order.ModeEdit {
		title = "Edit Order"
	}
	totals := e.Totals()
	fmt.Fprintln(b, title)
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Order #:     %s\n", e.OrderNumber())
	fmt.Fprintf(b, "Date:        %s\n", e.DisplayDate(time.Now()).Format("2006-01-02"))
	fmt.Fprintf(b, "# Products:  %d\n", totals.ProductCount)
	fmt.Fprintf(b, "Final Price: %s\n", money.Format(totals.FinalPrice))
	if e.Locked() {
		fmt.Fprintln(b, "Status:      Completed (read-only)")
	}
	fmt.Fprintln(b, "")

	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  Name\tUnit Price\tQty\tTotal")
	lines := e.Lines()
	for i, l := range lines {
		sel := e.Mode() == order.ModeEdit && i == a.cursor
		fmt.Fprintf(tw, "%s %s\t%s\t%d\t%s\n", marker(sel), l.ProductName, money.Format(l.UnitPrice), l.Quantity, money.Format(l.Total()))
	}
	tw.Flush()
	if len(lines) == 0 {
		fmt.Fprintln(b, "  No products added")
	}

	save := "w save"
	if e.Busy() {
		save = "Saving..."
	}
	if e.Mode() == order.ModeCreate {
		name := "Select product"
		for _, p := range e.Catalog() {
			if p.ID == a.addForm.ProductID {
				name = fmt.Sprintf("%s (%s)", p.Name, money.Format(p.UnitPrice))
			}
		}
		fmt.Fprintf(b, "\nAdd Product: < %s >  qty %d\n", name, a.addForm.Quantity)
		fmt.Fprintf(b, "\nControls: o order #, left/right product, +/- qty, a add, %s, esc back\n", save)
		return
	}
	fmt.Fprintf(b, "\nControls: up/down select, +/- qty, %s, esc back\n", save)
}

func (a App) viewProducts(b *strings.Builder) {
	fmt.Fprintln(b, "Products")
	fmt.Fprintln(b, "")
	if f := a.catalog.Form(); f.Editing() {
		fmt.Fprintf(b, "Editing %s (x cancel edit)\n\n", f.Name)
	}
	writeProducts(b, a.catalog.Products(), a.cursor, true)
	fmt.Fprintln(b, "\nControls: up/down select, a add, e edit, x cancel edit, d delete, r reload, esc orders, q quit")
}

func writeOrders(w io.Writer, rows []order.Row, cursor int, markers bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tOrder #\tDate\t# Products\tFinal Price\tStatus")
	for i, r := range rows {
		status := r.Status.Label()
		if r.Locked() {
			status += " (locked)"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%d\t%s\t%s\n",
			marker(markers && i == cursor), r.ID, r.OrderNumber, r.Date.Format("2006-01-02"),
			r.ProductCount, money.Format(r.FinalPrice), status)
	}
	tw.Flush()
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No orders found")
	}
}

func writeProducts(w io.Writer, products []catalog.Product, cursor int, markers bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tName\tUnit Price")
	for i, p := range products {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker(markers && i == cursor), p.ID, p.Name, money.Format(p.UnitPrice))
	}
	tw.Flush()
	if len(products) == 0 {
		fmt.Fprintln(w, "  No products found")
	}
}
