package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/pricing"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/order/internal/payment"
	"github.com/Alturino/storefront/order/pkg/request"
)

var (
	ringID     = uuid.MustParse("0b6f4b5e-1d55-4c61-8d8e-6a0d1c2e3f01")
	necklaceID = uuid.MustParse("0b6f4b5e-1d55-4c61-8d8e-6a0d1c2e3f02")
	braceletID = uuid.MustParse("0b6f4b5e-1d55-4c61-8d8e-6a0d1c2e3f03")

	testSettings = pricing.Settings{
		Currency:              pricing.Currency{Code: "ILS", Symbol: "₪"},
		TaxRatePercent:        decimal.NewFromInt(17),
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingFee:           decimal.NewFromInt(30),
	}
)

type env struct {
	cache          *redis.Client
	pool           *pgxpool.Pool
	pgContainer    *postgres.PostgresContainer
	redisContainer *testRedis.RedisContainer
	paymentServer  *httptest.Server
	paymentCalls   *atomic.Int32
	service        *OrderService
}

type (
	setupFunc    func(c context.Context, paymentHandler http.HandlerFunc) env
	teardownFunc func(env)
)

func migrationPath(name string) string {
	return filepath.Join("..", "..", "..", "migrations", name)
}

func acceptingPayment(reference string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payment.Redirect{
			RedirectURL: "https://pay.example.com/" + reference,
			Reference:   reference,
		})
	}
}

func failingPayment(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusServiceUnavailable)
}

func setup(t *testing.T) setupFunc {
	return func(c context.Context, paymentHandler http.HandlerFunc) env {
		pgContainer, err := postgres.Run(
			c,
			"postgres:16.6-alpine3.21",
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.WithDatabase("postgres"),
			postgres.BasicWaitStrategies(),
			postgres.WithInitScripts(
				migrationPath("20241118072912_create_table_products.up.sql"),
				migrationPath("20241125115439_create_table_orders.up.sql"),
				migrationPath(filepath.Join("seed", "products.seed.sql")),
			),
		)
		if err != nil {
			t.Fatalf("failed running postgres container with error: %s", err)
		}

		pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
		if err != nil {
			t.Fatalf("failed getting postgres connection string with error: %s", err)
		}

		pgConfig, err := pgxpool.ParseConfig(pgConnStr)
		if err != nil {
			t.Fatalf("failed parsing pgconfig with error: %s", err)
		}
		pgConfig.AfterConnect = func(c context.Context, conn *pgx.Conn) error {
			pgxuuid.Register(conn.TypeMap())
			return nil
		}

		pool, err := pgxpool.NewWithConfig(c, pgConfig)
		if err != nil {
			t.Fatalf("failed creating postgres pool with error: %s", err)
		}
		if err = pool.Ping(c); err != nil {
			t.Fatalf("failed ping postgres pool with error: %s", err)
		}

		redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
		if err != nil {
			t.Fatalf("failed running redis container with error: %s", err)
		}

		redisConnStr, err := redisContainer.ConnectionString(c)
		if err != nil {
			t.Fatalf("failed getting redis connection string with error: %s", err)
		}

		redisOpt, err := redis.ParseURL(redisConnStr)
		if err != nil {
			t.Fatalf("failed parsing redis url with error: %s", err)
		}

		cache := redis.NewClient(redisOpt)
		if err = cache.Ping(c).Err(); err != nil {
			t.Fatalf("failed ping redis client with error: %s", err)
		}

		calls := &atomic.Int32{}
		paymentServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			paymentHandler(w, r)
		}))
		paymentClient := payment.NewClient(config.Payment{
			BaseURL:   paymentServer.URL,
			ReturnURL: "https://shop.example.com/return",
			Timeout:   2 * time.Second,
		})

		svc := NewOrderService(
			pool,
			repository.New(pool),
			cache,
			event.NewRedisBus(cache, "test.order-events"),
			paymentClient,
			testSettings,
		)
		return env{
			cache:          cache,
			pool:           pool,
			pgContainer:    pgContainer,
			redisContainer: redisContainer,
			paymentServer:  paymentServer,
			paymentCalls:   calls,
			service:        svc,
		}
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(e env) {
		e.paymentServer.Close()
		e.cache.Close()
		e.pool.Close()
		if err := testcontainers.TerminateContainer(e.pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
		if err := testcontainers.TerminateContainer(e.redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}

func validForm() request.ShippingAddress {
	return request.ShippingAddress{
		FirstName:  "Dana",
		LastName:   "Levi",
		Address:    "Herzl 1",
		City:       "Haifa",
		PostalCode: "3100001",
		Phone:      "050-1234567",
		Email:      "dana@example.com",
	}
}

func countRows(t *testing.T, c context.Context, pool *pgxpool.Pool, query string, args ...interface{}) int {
	t.Helper()
	count := 0
	if err := pool.QueryRow(c, query, args...).Scan(&count); err != nil {
		t.Fatalf("failed counting rows with error: %s", err)
	}
	return count
}
