package order

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/pkg/logging"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
	"github.com/georgemunganga/printa-orders/internal/pkg/view"
)

// HandlerConfig collects the collaborators of the order pages.
type HandlerConfig struct {
	Orders   Repository
	Products catalog.Lister
	Drafts   DraftRepository
	Views    *view.Renderer
	Service  string

	// LineFetchConcurrency bounds the parallel line fetch of the list page.
	LineFetchConcurrency int
}

// Handler serves the order list and the add/edit order pages.
type Handler struct {
	cfg      HandlerConfig
	inflight *inflight
	now      func() time.Time
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg, inflight: newInflight(), now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PathList, http.StatusFound)
	})

	r.Route(PathList, func(r chi.Router) {
		r.Get("/", h.listOrders)               // GET  /my-orders
		r.Post("/{id}/status", h.changeStatus) // POST /my-orders/{id}/status
		r.Post("/{id}/delete", h.deleteOrder)  // POST /my-orders/{id}/delete
	})

	r.Route(PathCreate, func(r chi.Router) {
		r.Get("/", h.newOrder)         // GET  /add-order?draft={id}
		r.Post("/", h.createOrder)     // POST /add-order
		r.Post("/lines", h.addLine)    // POST /add-order/lines
		r.Get("/{id}", h.editOrder)    // GET  /add-order/{id}
		r.Post("/{id}", h.updateOrder) // POST /add-order/{id}
	})
}

// ── order list ──────────────────────────────────────────────────────────────

type listPage struct {
	Rows     []Row
	Statuses []Status
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	l := NewList(h.cfg.Orders, h.cfg.LineFetchConcurrency)
	n := l.Load(r.Context())
	h.report("list_orders", n, logging.Fields{})
	h.renderList(w, l, n)
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	l := NewList(h.cfg.Orders, h.cfg.LineFetchConcurrency)

	var n notice.Notice
	status, err := ParseStatus(r.PostForm.Get("status"))
	if err != nil {
		n = Explain(err)
	} else {
		n = l.ChangeStatus(r.Context(), id, status)
	}
	h.report("update_order_status", n, logging.Fields{OrderID: id})
	h.finishList(w, r, l, n)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l := NewList(h.cfg.Orders, h.cfg.LineFetchConcurrency)
	n := l.Delete(r.Context(), id)
	h.report("delete_order", n, logging.Fields{OrderID: id})
	h.finishList(w, r, l, n)
}

// finishList redirects back to the list on success and re-renders it with the notice otherwise.
func (h *Handler) finishList(w http.ResponseWriter, r *http.Request, l *List, n notice.Notice) {
	if n.IsOK() {
		http.Redirect(w, r, PathList, http.StatusSeeOther)
		return
	}
	h.report("list_orders", l.Load(r.Context()), logging.Fields{})
	h.renderList(w, l, n)
}

func (h *Handler) renderList(w http.ResponseWriter, l *List, n notice.Notice) {
	h.cfg.Views.Render(w, view.StatusFor(n), view.PageOrders, view.Page{
		Title:  "My Orders",
		Nav:    "orders",
		Notice: n,
		Data:   listPage{Rows: l.Rows(), Statuses: Statuses},
	})
}

// ── create mode ─────────────────────────────────────────────────────────────

func (h *Handler) newOrder(w http.ResponseWriter, r *http.Request) {
	draftID := r.URL.Query().Get("draft")
	e, d, n := h.openDraft(r.Context(), draftID)
	if draftID == "" && d != nil && n.IsOK() {
		http.Redirect(w, r, draftPath(d), http.StatusSeeOther)
		return
	}
	h.renderEditor(w, e, d, NewAddLineForm(), false, n)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, d, n := h.openDraft(r.Context(), r.PostForm.Get("draft"))
	form := NewAddLineForm()
	if !n.IsOK() || d == nil {
		h.renderEditor(w, e, d, form, false, n)
		return
	}

	_ = e.SetOrderNumber(r.PostForm.Get("order_number"))
	form.ProductID = r.PostForm.Get("product_id")
	form.Quantity, _ = strconv.Atoi(r.PostForm.Get("quantity"))

	if _, err := e.AddLine(form.ProductID, form.Quantity); err != nil {
		n = Explain(err)
	} else {
		form = NewAddLineForm()
	}
	if err := h.storeDraft(r.Context(), e, d); err != nil {
		n = notice.Failure(MsgDraftFailed, err)
	}
	h.report("add_line", n, logging.Fields{DraftID: d.ID.String(), ProductID: form.ProductID})

	if n.IsOK() {
		http.Redirect(w, r, draftPath(d), http.StatusSeeOther)
		return
	}
	h.renderEditor(w, e, d, form, false, n)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, d, n := h.openDraft(r.Context(), r.PostForm.Get("draft"))
	if !n.IsOK() || d == nil {
		h.renderEditor(w, e, d, NewAddLineForm(), false, n)
		return
	}
	_ = e.SetOrderNumber(r.PostForm.Get("order_number"))

	key := "draft:" + d.ID.String()
	if !h.inflight.start(key) {
		h.renderEditor(w, e, d, NewAddLineForm(), true, Explain(ErrSaveInFlight))
		return
	}
	defer h.inflight.done(key)

	started := time.Now()
	n = e.Save(r.Context())
	h.report("create_order", n, logging.Fields{DraftID: d.ID.String()})
	if n.IsOK() {
		if err := h.cfg.Drafts.Delete(r.Context(), d.ID.String()); err != nil {
			logging.Failure(h.cfg.Service, "delete_draft", err, logging.Fields{DraftID: d.ID.String()})
		}
		logging.Log(logging.Fields{
			Service:    h.cfg.Service,
			Op:         "create_order",
			DraftID:    d.ID.String(),
			Status:     "ok",
			DurationMS: time.Since(started).Milliseconds(),
		})
		http.Redirect(w, r, n.Navigate, http.StatusSeeOther)
		return
	}
	if err := h.storeDraft(r.Context(), e, d); err != nil {
		logging.Failure(h.cfg.Service, "store_draft", err, logging.Fields{DraftID: d.ID.String()})
	}
	h.renderEditor(w, e, d, NewAddLineForm(), false, n)
}

// openDraft restores the draft with the given ID, or starts a new one when the
// ID is empty or unknown. d is nil when no draft could be started.
func (h *Handler) openDraft(ctx context.Context, id string) (e *Editor, d *Draft, n notice.Notice) {
	n = notice.OK()
	if id != "" {
		stored, err := h.cfg.Drafts.Get(ctx, id)
		if err == nil {
			e, err = RestoreCreateEditor(h.cfg.Orders, stored)
		}
		if err == nil {
			return e, stored, n
		}
		if errors.Is(err, ErrDraftNotFound) {
			n = Explain(err)
		} else {
			n = notice.Failure(MsgDraftFailed, err)
		}
		h.report("open_draft", n, logging.Fields{DraftID: id})
	}

	e = NewCreateEditor(h.cfg.Orders, h.cfg.Products)
	if ln := e.Load(ctx); !ln.IsOK() {
		h.report("list_products", ln, logging.Fields{})
		return e, nil, ln
	}
	d = NewDraft(e)
	if err := h.cfg.Drafts.Create(ctx, d); err != nil {
		fn := notice.Failure(MsgDraftFailed, err)
		h.report("create_draft", fn, logging.Fields{DraftID: d.ID.String()})
		return e, nil, fn
	}
	return e, d, n
}

func (h *Handler) storeDraft(ctx context.Context, e *Editor, d *Draft) error {
	e.Snapshot(d)
	return h.cfg.Drafts.Update(ctx, d)
}

func draftPath(d *Draft) string {
	return PathCreate + "?draft=" + url.QueryEscape(d.ID.String())
}

// ── edit mode ───────────────────────────────────────────────────────────────

func (h *Handler) editOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e := NewEditEditor(h.cfg.Orders, id)
	n := e.Load(r.Context())
	h.report("get_order", n, logging.Fields{OrderID: id})
	h.renderEditor(w, e, nil, NewAddLineForm(), false, n)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	e := NewEditEditor(h.cfg.Orders, id)
	if n := e.Load(r.Context()); !n.IsOK() {
		h.report("get_order", n, logging.Fields{OrderID: id})
		h.renderEditor(w, e, nil, NewAddLineForm(), false, n)
		return
	}

	for _, l := range e.Lines() {
		raw, ok := r.PostForm["qty-"+l.ID.Value()]
		if !ok || len(raw) == 0 {
			continue
		}
		q, _ := strconv.Atoi(raw[0])
		if err := e.SetQuantity(l.ID, q); err != nil {
			h.renderEditor(w, e, nil, NewAddLineForm(), false, Explain(err))
			return
		}
	}

	key := "order:" + id
	if !h.inflight.start(key) {
		h.renderEditor(w, e, nil, NewAddLineForm(), true, Explain(ErrSaveInFlight))
		return
	}
	defer h.inflight.done(key)

	n := e.Save(r.Context())
	h.report("update_order", n, logging.Fields{OrderID: id})
	if n.IsOK() {
		http.Redirect(w, r, n.Navigate, http.StatusSeeOther)
		return
	}
	h.renderEditor(w, e, nil, NewAddLineForm(), false, n)
}

// ── rendering ───────────────────────────────────────────────────────────────

type editorPage struct {
	EditMode    bool
	SaveAction  string
	DraftID     string
	OrderNumber string
	Date        time.Time
	Totals      Totals
	Lines       []Line
	Busy        bool
	Locked      bool
	Catalog     []catalog.Product
	AddForm     AddLineForm
}

func (h *Handler) renderEditor(w http.ResponseWriter, e *Editor, d *Draft, form AddLineForm, busy bool, n notice.Notice) {
	p := editorPage{
		EditMode:    e.Mode() == ModeEdit,
		SaveAction:  PathCreate,
		OrderNumber: e.OrderNumber(),
		Date:        e.DisplayDate(h.now()),
		Totals:      e.Totals(),
		Lines:       e.Lines(),
		Busy:        busy || e.Busy(),
		Locked:      e.Locked(),
		Catalog:     e.Catalog(),
		AddForm:     form,
	}
	title := "Add Order"
	if p.EditMode {
		p.SaveAction = EditPath(e.OrderID())
		title = "Edit Order"
	}
	if d != nil {
		p.DraftID = d.ID.String()
	}
	h.cfg.Views.Render(w, view.StatusFor(n), view.PageEditor, view.Page{
		Title:  title,
		Nav:    "orders",
		Notice: n,
		Data:   p,
	})
}

func (h *Handler) report(op string, n notice.Notice, fields logging.Fields) {
	if n.Kind == notice.KindFailure {
		fields.Message = n.Message
		logging.Failure(h.cfg.Service, op, n.Err, fields)
	}
}

// inflight tracks saves in progress so a second submit of the same order is refused.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight { return &inflight{keys: make(map[string]struct{})} }

func (f *inflight) start(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inflight) done(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
}
