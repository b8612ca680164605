package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if a.busy != "" {
		return a, nil
	}
	if a.confirm != nil {
		c := a.confirm
		a.confirm = nil
		if msg.String() == "y" {
			return c.yes(a)
		}
		return a, nil
	}
	if a.prompt != nil {
		return a.promptKey(msg)
	}

	switch a.screen {
	case screenEditor:
		return a.editorKey(msg)
	case screenProducts:
		return a.productsKey(msg)
	default:
		return a.ordersKey(msg)
	}
}

func (a App) promptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := *a.prompt
	switch msg.Type {
	case tea.KeyEnter:
		a.prompt = nil
		return p.submit(a, p.value)
	case tea.KeyEsc:
		a.prompt = nil
		return a, nil
	case tea.KeyBackspace:
		if r := []rune(p.value); len(r) > 0 {
			p.value = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		p.value += " "
	case tea.KeyRunes:
		p.value += string(msg.Runes)
	}
	a.prompt = &p
	return a, nil
}

// ── order list ──────────────────────────────────────────────────────────────

func (a App) ordersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.list.Rows()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.cursor = clamp(a.cursor-1, len(rows))
	case "down", "j":
		a.cursor = clamp(a.cursor+1, len(rows))
	case "r":
		return a.showOrders()
	case "p":
		return a.showProducts()
	case "n":
		return a.openEditor(order.NewCreateEditor(a.deps.Orders, a.deps.Products))
	case "e", "enter":
		if len(rows) == 0 {
			return a, nil
		}
		row := rows[a.cursor]
		if row.Locked() {
			a.notice = order.Explain(order.ErrOrderCompleted)
			return a, nil
		}
		return a.openEditor(order.NewEditEditor(a.deps.Orders, row.ID))
	case "s", "S":
		if len(rows) == 0 {
			return a, nil
		}
		row := rows[a.cursor]
		step := 1
		if msg.String() == "S" {
			step = -1
		}
		next := cycleStatus(row.Status, step)
		return a.runList(func(ctx context.Context, l *order.List) notice.Notice {
			return l.ChangeStatus(ctx, row.ID, next)
		})
	case "d":
		if len(rows) == 0 {
			return a, nil
		}
		row := rows[a.cursor]
		a.confirm = &confirm{
			question: fmt.Sprintf("Delete order %s? (y/n)", row.OrderNumber),
			yes: func(a App) (App, tea.Cmd) {
				return a.runList(func(ctx context.Context, l *order.List) notice.Notice {
					return l.Delete(ctx, row.ID)
				})
			},
		}
	}
	return a, nil
}

func (a App) runList(op func(context.Context, *order.List) notice.Notice) (App, tea.Cmd) {
	a.busy = "Working..."
	ctx, l := a.ctx, a.list
	return a, func() tea.Msg { return listChanged{n: op(ctx, l)} }
}

// ── editor ──────────────────────────────────────────────────────────────────

func (a App) editorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := a.editor
	switch msg.String() {
	case "esc":
		return a.showOrders()
	case "w", "ctrl+s":
		a.busy = "Saving..."
		return a, saveEditor(a.ctx, e)
	}

	if e.Mode() == order.ModeCreate {
		return a.createKey(msg)
	}
	return a.editKey(msg)
}

func (a App) createKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := a.editor
	products := e.Catalog()
	switch msg.String() {
	case "o":
		a.prompt = &prompt{
			label: "Order #",
			value: e.OrderNumber(),
			submit: func(a App, v string) (App, tea.Cmd) {
				a.notice = order.Explain(a.editor.SetOrderNumber(v))
				return a, nil
			},
		}
	case "left", "h":
		if a.pick >= 0 {
			a.pick--
		}
	case "right", "l":
		if a.pick < len(products)-1 {
			a.pick++
		}
	case "+", "=":
		a.addForm.Quantity++
	case "-":
		if a.addForm.Quantity > 0 {
			a.addForm.Quantity--
		}
	case "a":
		if _, err := e.AddLine(a.addForm.ProductID, a.addForm.Quantity); err != nil {
			a.notice = order.Explain(err)
			return a, nil
		}
		a.notice = notice.OK()
		a.pick = -1
		a.addForm = order.NewAddLineForm()
		return a, nil
	}

	a.addForm.ProductID = ""
	if a.pick >= 0 && a.pick < len(products) {
		a.addForm.ProductID = products[a.pick].ID
	}
	return a, nil
}

func (a App) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := a.editor.Lines()
	switch msg.String() {
	case "up", "k":
		a.cursor = clamp(a.cursor-1, len(lines))
	case "down", "j":
		a.cursor = clamp(a.cursor+1, len(lines))
	case "+", "=", "-":
		if len(lines) == 0 {
			return a, nil
		}
		l := lines[a.cursor]
		q := l.Quantity + 1
		if msg.String() == "-" {
			q = l.Quantity - 1
		}
		a.notice = order.Explain(a.editor.SetQuantity(l.ID, q))
	}
	return a, nil
}

// ── products ────────────────────────────────────────────────────────────────

func (a App) productsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := a.catalog.Products()
	switch msg.String() {
	case "esc", "o":
		return a.showOrders()
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.cursor = clamp(a.cursor-1, len(products))
	case "down", "j":
		a.cursor = clamp(a.cursor+1, len(products))
	case "r":
		return a.showProducts()
	case "a":
		a.catalog.Reset()
		return a.askProduct(catalog.Form{})
	case "e", "enter":
		if len(products) == 0 {
			return a, nil
		}
		if err := a.catalog.Edit(products[a.cursor].ID); err != nil {
			a.notice = notice.Validation(catalog.MsgUnknownToEdit, err)
			return a, nil
		}
		return a.askProduct(a.catalog.Form())
	case "x":
		a.catalog.Reset()
		a.notice = notice.OK()
	case "d":
		if len(products) == 0 {
			return a, nil
		}
		p := products[a.cursor]
		a.confirm = &confirm{
			question: fmt.Sprintf("Delete product %s? (y/n)", p.Name),
			yes: func(a App) (App, tea.Cmd) {
				a.busy = "Working..."
				ctx, m := a.ctx, a.catalog
				return a, func() tea.Msg { return productsChanged{n: m.Delete(ctx, p.ID)} }
			},
		}
	}
	return a, nil
}

// askProduct prompts for the name and then the unit price, then saves the form.
func (a App) askProduct(f catalog.Form) (App, tea.Cmd) {
	a.prompt = &prompt{
		label: "Name",
		value: f.Name,
		submit: func(a App, name string) (App, tea.Cmd) {
			f.Name = name
			a.prompt = &prompt{
				label: "Unit price",
				value: f.UnitPrice,
				submit: func(a App, price string) (App, tea.Cmd) {
					f.UnitPrice = price
					a.catalog.Fill(f)
					a.busy = "Saving..."
					ctx, m := a.ctx, a.catalog
					return a, func() tea.Msg { return productsChanged{n: m.Save(ctx)} }
				},
			}
			return a, nil
		},
	}
	return a, nil
}

// cycleStatus moves step places through order.Statuses, wrapping at both ends.
// An unknown status restarts at Pending.
func cycleStatus(s order.Status, step int) order.Status {
	if !s.Valid() {
		return order.StatusPending
	}
	n := len(order.Statuses)
	i := ((int(s)-1+step)%n + n) % n
	return order.Statuses[i]
}
