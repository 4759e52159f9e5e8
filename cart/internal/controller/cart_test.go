package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/store"
	"github.com/Alturino/storefront/internal/pricing"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type stubOrders struct {
	received []orderRequest.CreateOrder
}

func (s *stubOrders) CreateOrder(c context.Context, param orderRequest.CreateOrder) (orderResponse.Checkout, error) {
	s.received = append(s.received, param)
	return orderResponse.Checkout{OrderID: uuid.New(), RedirectURL: "https://pay.example.com/ref"}, nil
}

func newRouter(t *testing.T) (*mux.Router, *stubOrders) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	orders := &stubOrders{}
	svc := service.NewCartService(store.NewRedisStore(client, "cart", time.Hour), nil, orders, pricing.Settings{
		TaxRatePercent:        decimal.NewFromInt(17),
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFee:           decimal.NewFromInt(30),
	})
	router := mux.NewRouter()
	AttachCartController(router, svc, "cart-controller-secret")
	return router, orders
}

func call(t *testing.T, router http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w.Code, decoded
}

func cartOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	cart, ok := data["cart"].(map[string]interface{})
	require.True(t, ok)
	return cart
}

func TestCartRoutes(t *testing.T) {
	router, orders := newRouter(t)
	base := "/carts/" + uuid.NewString()
	ring := uuid.NewString()
	necklace := uuid.NewString()

	status, body := call(t, router, http.MethodPost, base+"/items",
		`{"productId":"`+ring+`","unitPrice":"100","quantity":2,"displayName":"Ring"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), cartOf(t, body)["itemCount"])

	status, _ = call(t, router, http.MethodPost, base+"/items",
		`{"productId":"`+necklace+`","unitPrice":"50","displayName":"Necklace"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = call(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	cart := cartOf(t, body)
	assert.Equal(t, float64(3), cart["itemCount"])
	totals, ok := cart["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "322.5", totals["grandTotal"])

	status, body = call(t, router, http.MethodPut, base+"/items/"+ring, `{"quantity":0}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), cartOf(t, body)["itemCount"])

	status, body = call(t, router, http.MethodPut, base+"/display", `{"open":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, cartOf(t, body)["isOpen"])

	status, body = call(t, router, http.MethodPost, base+"/checkout", `{"customerForm":{"firstName":"Dana"}}`)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, orders.received, 1)
	assert.Nil(t, orders.received[0].OwnerID)
	assert.Len(t, orders.received[0].Items, 1)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://pay.example.com/ref", data["redirectUrl"])

	status, body = call(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), cartOf(t, body)["itemCount"])
}

func TestCartRoutesRejectMalformedInput(t *testing.T) {
	router, _ := newRouter(t)
	base := "/carts/" + uuid.NewString()

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "given malformed session should reject", method: http.MethodGet, target: "/carts/abc"},
		{name: "given malformed product should reject", method: http.MethodDelete, target: base + "/items/abc"},
		{name: "given negative price should reject", method: http.MethodPost, target: base + "/items", body: `{"productId":"` + uuid.NewString() + `","unitPrice":"-5"}`},
		{name: "given malformed body should reject", method: http.MethodPut, target: base + "/display", body: `{`},
		{name: "given explicit zero quantity should reject", method: http.MethodPost, target: base + "/items", body: `{"productId":"` + uuid.NewString() + `","unitPrice":"5","quantity":0}`},
		{name: "given sub cent price should reject", method: http.MethodPost, target: base + "/items", body: `{"productId":"` + uuid.NewString() + `","unitPrice":"0.125"}`},
		{name: "given quantity past int32 should reject", method: http.MethodPost, target: base + "/items", body: `{"productId":"` + uuid.NewString() + `","unitPrice":"5","quantity":4294967297}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body["errors"])
		})
	}
}
