package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "solestore/internal/catalog/models"
	catalogstore "solestore/internal/catalog/store"
	"solestore/internal/orders/handler"
	"solestore/internal/orders/models"
	"solestore/internal/orders/service"
	"solestore/internal/orders/store"
	"solestore/internal/platform/metrics"
	"solestore/pkg/requestcontext"
	"solestore/pkg/testutil"
)

func newRouter(t *testing.T, userID uuid.UUID) (http.Handler, *catalogstore.MemoryStore) {
	t.Helper()

	catalog := catalogstore.NewMemory()
	orderStore := store.NewMemory(catalog)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(orderStore, orderStore, logger, metrics.NewForTest())
	h := handler.New(svc, logger)

	router := chi.NewRouter()
	// Stands in for the auth middleware.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.Register(router)
	h.RegisterAdmin(router)
	return router, catalog
}

func seed(t *testing.T, catalog *catalogstore.MemoryStore) int64 {
	t.Helper()
	id, err := catalog.Create(context.Background(), catalogmodels.Sneaker{
		Name: "Air Max 270", Brand: "Nike", Price: 150, Stock: 10, Sizes: []string{"9", "10"},
	})
	require.NoError(t, err)
	return id
}

func orderBody(sneakerID int64) handler.CreateOrderRequest {
	return handler.CreateOrderRequest{
		Items: []models.OrderItem{{SneakerID: sneakerID, Quantity: 2, Size: "9", Price: 150}},
		Total: 300,
		ShippingAddress: models.ShippingAddress{
			FullName: "Alice Baker", Address: "1 Main St", City: "Portland",
			ZipCode: "97201", Country: "USA",
		},
	}
}

func TestHandleCreate(t *testing.T) {
	router, catalog := newRouter(t, uuid.New())
	sneakerID := seed(t, catalog)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", orderBody(sneakerID))
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.NotEmpty(t, (*resp)["id"])
}

func TestHandleCreate_ValidationErrors(t *testing.T) {
	router, catalog := newRouter(t, uuid.New())
	sneakerID := seed(t, catalog)

	t.Run("missing shipping address", func(t *testing.T) {
		body := orderBody(sneakerID)
		body.ShippingAddress = models.ShippingAddress{}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", body)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
		errResp := testutil.UnmarshalErrorResponse(t, rr)
		assert.Contains(t, errResp.Details, "Full name is required")
	})

	t.Run("size not offered", func(t *testing.T) {
		body := orderBody(sneakerID)
		body.Items[0].Size = "15"
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", body)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})

	t.Run("total mismatch", func(t *testing.T) {
		body := orderBody(sneakerID)
		body.Total = 299
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", body)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", "not an order")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}

func TestHandleList_ScopedToCaller(t *testing.T) {
	userID := uuid.New()
	router, catalog := newRouter(t, userID)
	sneakerID := seed(t, catalog)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", orderBody(sneakerID))
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/orders"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	orders := testutil.UnmarshalResponse[[]models.Order](t, rr)
	require.Len(t, *orders, 1)
	assert.Equal(t, userID, (*orders)[0].UserID)
}

func TestHandleUpdateStatus(t *testing.T) {
	router, catalog := newRouter(t, uuid.New())
	sneakerID := seed(t, catalog)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/orders", orderBody(sneakerID))
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[map[string]string](t, rr)
	orderID := (*created)["id"]

	t.Run("bad order id", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/api/orders/not-a-uuid/status",
			handler.UpdateStatusRequest{Status: models.StatusCompleted})
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusBadRequest, "bad_request")
	})

	t.Run("invalid target status", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/api/orders/"+orderID+"/status",
			handler.UpdateStatusRequest{Status: models.StatusPending})
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusBadRequest, "validation_error")
	})

	t.Run("completes then conflicts", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/api/orders/"+orderID+"/status",
			handler.UpdateStatusRequest{Status: models.StatusCompleted})
		testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusOK)

		req = testutil.NewJSONRequest(t, http.MethodPatch, "/api/orders/"+orderID+"/status",
			handler.UpdateStatusRequest{Status: models.StatusCancelled})
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusConflict, "conflict")
	})
}
