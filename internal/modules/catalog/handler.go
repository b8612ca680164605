package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-orders/internal/pkg/logging"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
	"github.com/georgemunganga/printa-orders/internal/pkg/view"
)

// Handler serves the product catalog page.
type Handler struct {
	repo    Repository
	views   *view.Renderer
	service string
}

func NewHandler(repo Repository, views *view.Renderer, service string) *Handler {
	return &Handler{repo: repo, views: views, service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)              // GET  /products?edit={id}
		r.Post("/", h.saveProduct)              // POST /products
		r.Post("/{id}/delete", h.deleteProduct) // POST /products/{id}/delete
	})
}

type productsPage struct {
	Products []Product
	Form     Form
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	m := NewManager(h.repo)
	n := m.Load(r.Context())
	h.report("list_products", n, "")

	if id := r.URL.Query().Get("edit"); id != "" && n.IsOK() {
		if err := m.Edit(id); err != nil {
			n = notice.Validation(MsgUnknownToEdit, err)
		}
	}
	h.render(w, m, n)
}

func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m := NewManager(h.repo)
	m.Fill(Form{
		EditingID: r.PostForm.Get("editing_id"),
		Name:      r.PostForm.Get("name"),
		UnitPrice: r.PostForm.Get("unit_price"),
	})
	editingID := m.Form().EditingID

	n := m.Save(r.Context())
	h.report("save_product", n, editingID)
	if n.IsOK() {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if !m.Loaded() {
		h.report("list_products", m.Load(r.Context()), "")
	}
	h.render(w, m, n)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m := NewManager(h.repo)
	n := m.Delete(r.Context(), id)
	h.report("delete_product", n, id)
	if n.IsOK() {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	if !m.Loaded() {
		h.report("list_products", m.Load(r.Context()), "")
	}
	h.render(w, m, n)
}

func (h *Handler) render(w http.ResponseWriter, m *Manager, n notice.Notice) {
	h.views.Render(w, view.StatusFor(n), view.PageProducts, view.Page{
		Title:  "Products",
		Nav:    "products",
		Notice: n,
		Data:   productsPage{Products: m.Products(), Form: m.Form()},
	})
}

func (h *Handler) report(op string, n notice.Notice, productID string) {
	if n.Kind == notice.KindFailure {
		logging.Failure(h.service, op, n.Err, logging.Fields{ProductID: productID, Message: n.Message})
	}
}
