package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-orders/internal/pkg/view"
)

type testServer struct {
	router  *chi.Mux
	handler *Handler
	orders  *fakeOrders
	drafts  DraftRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	views, err := view.New()
	require.NoError(t, err)

	f := newFakeOrders()
	drafts := NewMemoryDraftRepository()
	h := NewHandler(HandlerConfig{
		Orders:               f,
		Products:             f,
		Drafts:               drafts,
		Views:                views,
		Service:              "test",
		LineFetchConcurrency: 2,
	})
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return &testServer{router: r, handler: h, orders: f, drafts: drafts}
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *testServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// startDraft opens the create page and returns the draft ID it redirected to.
func (s *testServer) startDraft(t *testing.T) string {
	t.Helper()
	rec := s.get(PathCreate)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, PathCreate, loc.Path)
	id := loc.Query().Get("draft")
	require.NotEmpty(t, id)
	return id
}

func TestHandler_RootRedirectsToList(t *testing.T) {
	s := newTestServer(t)
	rec := s.get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PathList, rec.Header().Get("Location"))
}

func TestHandler_ListOrders(t *testing.T) {
	s := newTestServer(t)
	open := s.orders.seed("PO-100", StatusPending, persistedLine("l1", "p-widget", "Widget", "9.50", 3))
	done := s.orders.seed("PO-200", StatusCompleted)

	rec := s.get(PathList)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "PO-100")
	assert.Contains(t, body, "$28.50")
	assert.Contains(t, body, "2024-03-01")
	assert.Contains(t, body, "In Progress")
	assert.Contains(t, body, `href="/add-order/`+open+`"`)
	assert.NotContains(t, body, `href="/add-order/`+done+`"`)
	assert.NotContains(t, body, `action="/my-orders/`+done+`/delete"`)

	statusSelect := func(id string) string {
		re := regexp.MustCompile(`action="/my-orders/` + regexp.QuoteMeta(id) + `/status"[^>]*>\s*(<select[^>]*>)`)
		m := re.FindStringSubmatch(body)
		require.Len(t, m, 2, "status selector for order %s", id)
		return m[1]
	}
	assert.Regexp(t, `\sdisabled[\s>]`, statusSelect(done))
	assert.NotContains(t, statusSelect(open), "disabled")
}

func TestHandler_ListOrdersEmptyAndFailure(t *testing.T) {
	s := newTestServer(t)
	assert.Contains(t, s.get(PathList).Body.String(), "No orders found")

	s.orders.failListOrders = true
	rec := s.get(PathList)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgLoadOrdersFailed)
}

func TestHandler_ChangeStatus(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-1", StatusPending)

	rec := s.post(PathList+"/"+id+"/status", url.Values{"status": {"2"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathList, rec.Header().Get("Location"))
	assert.Equal(t, StatusInProgress, s.orders.orders[0].Status)
}

func TestHandler_ChangeStatusRejected(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-1", StatusCompleted)

	rec := s.post(PathList+"/"+id+"/status", url.Values{"status": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgCompleted)

	rec = s.post(PathList+"/"+id+"/status", url.Values{"status": {"9"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgInvalidStatus)
	assert.Equal(t, StatusCompleted, s.orders.orders[0].Status)
}

func TestHandler_DeleteOrder(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-1", StatusPending)

	rec := s.post(PathList+"/"+id+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, s.orders.orders)
}

func TestHandler_DeleteOrderFailure(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-1", StatusPending)
	s.orders.failDelete = true

	rec := s.post(PathList+"/"+id+"/delete", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, MsgDeleteFailed)
	assert.Contains(t, body, "PO-1")
}

func TestHandler_CreateOrderFlow(t *testing.T) {
	s := newTestServer(t)
	draft := s.startDraft(t)

	rec := s.get(PathCreate + "?draft=" + draft)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Add Order")
	assert.Contains(t, body, "Widget ($9.50)")
	assert.Contains(t, body, "No products added")

	rec = s.post(PathCreate+"/lines", url.Values{
		"draft":        {draft},
		"order_number": {"PO-100"},
		"product_id":   {"p-widget"},
		"quantity":     {"3"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body = s.get(PathCreate + "?draft=" + draft).Body.String()
	assert.Contains(t, body, `value="PO-100"`)
	assert.Contains(t, body, "$28.50")
	assert.NotContains(t, body, "No products added")

	rec = s.post(PathCreate, url.Values{"draft": {draft}, "order_number": {"PO-100"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathList, rec.Header().Get("Location"))

	assert.Equal(t, []string{"listProducts", "createOrder:PO-100", "addLine:101:p-widget:3"}, s.orders.Calls())

	_, err := s.drafts.Get(context.Background(), draft)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestHandler_AddLineRejected(t *testing.T) {
	s := newTestServer(t)
	draft := s.startDraft(t)

	rec := s.post(PathCreate+"/lines", url.Values{
		"draft":        {draft},
		"order_number": {"PO-1"},
		"product_id":   {"p-widget"},
		"quantity":     {"0"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select product and quantity &gt; 0")

	d, err := s.drafts.Get(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, d.Lines)
	assert.Equal(t, "PO-1", d.OrderNumber)
}

func TestHandler_CreateOrderValidation(t *testing.T) {
	s := newTestServer(t)
	draft := s.startDraft(t)

	rec := s.post(PathCreate, url.Values{"draft": {draft}, "order_number": {"PO-1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgNoLines)

	rec = s.post(PathCreate, url.Values{"draft": {draft}, "order_number": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgOrderNumber)

	assert.Equal(t, []string{"listProducts"}, s.orders.Calls())
}

func TestHandler_CreateOrderSaveFailureKeepsDraft(t *testing.T) {
	s := newTestServer(t)
	s.orders.failCreate = true
	draft := s.startDraft(t)
	s.post(PathCreate+"/lines", url.Values{
		"draft": {draft}, "order_number": {"PO-1"}, "product_id": {"p-gadget"}, "quantity": {"2"},
	})

	rec := s.post(PathCreate, url.Values{"draft": {draft}, "order_number": {"PO-1"}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgSaveFailed)

	d, err := s.drafts.Get(context.Background(), draft)
	require.NoError(t, err)
	assert.Len(t, d.Lines, 1)
}

func TestHandler_UnknownDraftStartsOver(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(PathCreate, url.Values{"draft": {"6f1d1c2e-0000-4000-8000-000000000000"}, "order_number": {"PO-1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgDraftExpired)
	assert.NotContains(t, s.orders.Calls(), "createOrder:PO-1")
}

func TestHandler_CreatePageProductsFailure(t *testing.T) {
	s := newTestServer(t)
	s.orders.failProducts = true

	rec := s.get(PathCreate)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgLoadProductsFailed)
}

func TestHandler_EditOrder(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-5", StatusPending,
		persistedLine("l1", "p-widget", "Widget", "9.50", 1),
		persistedLine("l2", "p-gadget", "Gadget", "4.25", 2),
	)

	rec := s.get(EditPath(id))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Order")
	assert.Contains(t, body, `name="qty-l1"`)
	assert.Contains(t, body, "$18.00")

	rec = s.post(EditPath(id), url.Values{"qty-l1": {"5"}, "qty-l2": {"2"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PathList, rec.Header().Get("Location"))
	assert.Equal(t, 5, s.orders.lines[id][0].Quantity)
	assert.Contains(t, s.orders.Calls(), "updateLine:"+id+":l2:2")
}

func TestHandler_EditOrderRejectsBadQuantity(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-5", StatusPending, persistedLine("l1", "p-widget", "Widget", "9.50", 1))

	rec := s.post(EditPath(id), url.Values{"qty-l1": {"0"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgInvalidQuantity)
	assert.Equal(t, 1, s.orders.lines[id][0].Quantity)
}

func TestHandler_EditCompletedOrder(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-5", StatusCompleted, persistedLine("l1", "p-widget", "Widget", "9.50", 1))

	rec := s.post(EditPath(id), url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgCompleted)
	assert.NotContains(t, s.orders.Calls(), "updateLine:"+id+":l1:1")
}

func TestHandler_EditSaveInFlight(t *testing.T) {
	s := newTestServer(t)
	id := s.orders.seed("PO-5", StatusPending, persistedLine("l1", "p-widget", "Widget", "9.50", 1))

	require.True(t, s.handler.inflight.start("order:"+id))
	rec := s.post(EditPath(id), url.Values{"qty-l1": {"2"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Saving...")
	assert.Equal(t, 1, s.orders.lines[id][0].Quantity)

	s.handler.inflight.done("order:" + id)
	rec = s.post(EditPath(id), url.Values{"qty-l1": {"2"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
