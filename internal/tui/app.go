// Package tui is the terminal console: the order list, the add/edit order
// editor and the product catalog as one bubbletea program.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

type screen int

const (
	screenOrders screen = iota
	screenEditor
	screenProducts
)

// Deps are the remote APIs the console drives.
type Deps struct {
	Orders               order.Repository
	Products             catalog.Repository
	LineFetchConcurrency int
}

// App is the root bubbletea model. Remote calls run as commands; while one is
// in flight every key except ctrl+c is ignored and the views do not read the
// state the command is changing.
type App struct {
	ctx    context.Context
	deps   Deps
	screen screen
	notice notice.Notice
	busy   string

	list    *order.List
	editor  *order.Editor
	catalog *catalog.Manager

	cursor  int
	pick    int
	addForm order.AddLineForm

	prompt  *prompt
	confirm *confirm
}

// prompt collects one line of text.
type prompt struct {
	label  string
	value  string
	submit func(a App, value string) (App, tea.Cmd)
}

// confirm asks a yes/no question before a destructive action.
type confirm struct {
	question string
	yes      func(a App) (App, tea.Cmd)
}

func New(ctx context.Context, deps Deps) App {
	return App{
		ctx:     ctx,
		deps:    deps,
		list:    order.NewList(deps.Orders, deps.LineFetchConcurrency),
		catalog: catalog.NewManager(deps.Products),
		pick:    -1,
		addForm: order.NewAddLineForm(),
		busy:    "Loading...",
	}
}

func (a App) Init() tea.Cmd { return loadOrders(a.ctx, a.list) }

// ── messages ────────────────────────────────────────────────────────────────

type ordersLoaded struct{ n notice.Notice }

type listChanged struct{ n notice.Notice }

type editorLoaded struct {
	editor *order.Editor
	n      notice.Notice
}

type editorSaved struct{ n notice.Notice }

type productsLoaded struct{ n notice.Notice }

type productsChanged struct{ n notice.Notice }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case ordersLoaded:
		a.busy, a.notice = "", msg.n
		a.cursor = clamp(a.cursor, len(a.list.Rows()))

	case listChanged:
		a.busy, a.notice = "", msg.n
		a.cursor = clamp(a.cursor, len(a.list.Rows()))

	case editorLoaded:
		a.busy, a.notice = "", msg.n
		a.editor = msg.editor
		a.screen = screenEditor
		a.cursor, a.pick = 0, -1
		a.addForm = order.NewAddLineForm()

	case editorSaved:
		a.busy, a.notice = "", msg.n
		if msg.n.IsOK() && msg.n.Navigate == order.PathList {
			return a.showOrders()
		}

	case productsLoaded:
		a.busy, a.notice = "", msg.n
		a.cursor = clamp(a.cursor, len(a.catalog.Products()))

	case productsChanged:
		a.busy, a.notice = "", msg.n
		a.cursor = clamp(a.cursor, len(a.catalog.Products()))
	}
	return a, nil
}

// ── navigation ──────────────────────────────────────────────────────────────

func (a App) showOrders() (App, tea.Cmd) {
	a.screen, a.cursor, a.editor = screenOrders, 0, nil
	a.list = order.NewList(a.deps.Orders, a.deps.LineFetchConcurrency)
	a.busy = "Loading..."
	return a, loadOrders(a.ctx, a.list)
}

func (a App) showProducts() (App, tea.Cmd) {
	a.screen, a.cursor, a.notice = screenProducts, 0, notice.OK()
	a.catalog = catalog.NewManager(a.deps.Products)
	a.busy = "Loading..."
	return a, loadProducts(a.ctx, a.catalog)
}

func (a App) openEditor(e *order.Editor) (App, tea.Cmd) {
	a.notice = notice.OK()
	a.busy = "Loading..."
	return a, loadEditor(a.ctx, e)
}

// ── commands ────────────────────────────────────────────────────────────────

func loadOrders(ctx context.Context, l *order.List) tea.Cmd {
	return func() tea.Msg { return ordersLoaded{n: l.Load(ctx)} }
}

func loadEditor(ctx context.Context, e *order.Editor) tea.Cmd {
	return func() tea.Msg { return editorLoaded{editor: e, n: e.Load(ctx)} }
}

func saveEditor(ctx context.Context, e *order.Editor) tea.Cmd {
	return func() tea.Msg { return editorSaved{n: e.Save(ctx)} }
}

func loadProducts(ctx context.Context, m *catalog.Manager) tea.Cmd {
	return func() tea.Msg { return productsLoaded{n: m.Load(ctx)} }
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
