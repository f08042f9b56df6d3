package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palteria/palteria_api/internal/cart"
	"github.com/palteria/palteria_api/internal/middleware"
	"github.com/palteria/palteria_api/internal/repository"
	"github.com/palteria/palteria_api/internal/service"
	"github.com/palteria/palteria_api/internal/storage"
)

func newCheckoutTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.New(storage.NewMemoryKV())
	catalogRepo := repository.NewCatalogRepository(store)
	require.NoError(t, catalogRepo.EnsureSeedProducts())
	require.NoError(t, catalogRepo.UpsertStock(1, 10, 25000, true))

	orderRepo := repository.NewOrderRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	catalogSvc := service.NewCatalogService(catalogRepo, repository.NewPrefsRepository(store))
	checkoutSvc := service.NewCheckoutService(orderRepo, customerRepo)

	sessions := cart.NewSessions()
	cartHandler := NewCartHandler(sessions, catalogSvc)
	checkoutHandler := NewCheckoutHandler(sessions, checkoutSvc, customerRepo)

	router := gin.New()
	router.Use(middleware.SessionMiddleware())
	router.POST("/v1/cart/items", cartHandler.AddItem)
	router.POST("/v1/checkout", checkoutHandler.Confirm)
	router.GET("/v1/checkout/last-phone", checkoutHandler.GetLastPhone)
	router.GET("/v1/customers/:phone", checkoutHandler.GetProfile)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, sessionID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

const validCheckoutBody = `{
	"telefono": "11 2233-4455",
	"comercio": "Verdulería Sol",
	"direccion": "Av. Siempreviva 742",
	"localidad": "Lanús"
}`

func TestCheckout_EmptyCartConflict(t *testing.T) {
	router := newCheckoutTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/v1/checkout", validCheckoutBody, "s1")
	assert.Equal(t, 409, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
}

func TestCheckout_ValidationFailureReportsFields(t *testing.T) {
	router := newCheckoutTestRouter(t)
	doJSON(t, router, http.MethodPost, "/v1/cart/items", `{"productId":1}`, "s1")

	w, resp := doJSON(t, router, http.MethodPost, "/v1/checkout", `{"telefono":"123"}`, "s1")
	assert.Equal(t, 422, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "telefono")
	assert.Contains(t, resp.Error.Fields, "direccion")
	assert.Contains(t, resp.Error.Fields, "localidad")
}

func TestCheckout_SuccessCreatesOrderAndProfile(t *testing.T) {
	router := newCheckoutTestRouter(t)
	doJSON(t, router, http.MethodPost, "/v1/cart/items", `{"productId":1}`, "s1")
	doJSON(t, router, http.MethodPost, "/v1/cart/items", `{"productId":1}`, "s1")

	w, resp := doJSON(t, router, http.MethodPost, "/v1/checkout", validCheckoutBody, "s1")
	require.Equal(t, 201, w.Code)

	var order struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalCrates int    `json:"totalCrates"`
		Customer    struct {
			Phone string `json:"telefono"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 2, order.TotalCrates)
	assert.Equal(t, "1122334455", order.Customer.Phone)

	// A second checkout against the same session hits an empty cart.
	w, _ = doJSON(t, router, http.MethodPost, "/v1/checkout", validCheckoutBody, "s1")
	assert.Equal(t, 409, w.Code)

	// The profile cache and last-phone prefill were updated.
	w, resp = doJSON(t, router, http.MethodGet, "/v1/customers/11-2233-4455", "", "s1")
	require.Equal(t, 200, w.Code)
	var profile struct {
		Business string `json:"comercio"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, "Verdulería Sol", profile.Business)

	_, resp = doJSON(t, router, http.MethodGet, "/v1/checkout/last-phone", "", "s1")
	var last struct {
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &last))
	assert.Equal(t, "1122334455", last.Phone)
}

func TestCheckout_UnknownProfileIs404(t *testing.T) {
	router := newCheckoutTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/v1/customers/9988776655", "", "s1")
	assert.Equal(t, 404, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_CUSTOMER", resp.Error.Code)
}
