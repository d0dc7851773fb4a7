//go:build integration

package e2e

// e2e_test.go
// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Product CRUD round trip
//   T-E2E-2: Sale recording decrements stock atomically
//   T-E2E-3: Concurrent sales never oversell (stock=5, 2× qty=3)
//   T-E2E-4: Deleting a product with sales is rejected
//   T-E2E-5: Windowed report includes day 29, excludes day 31
//   T-E2E-6: Price edit leaves historical sale totals untouched

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/config"
	"github.com/Vaibhav-12521/Invento/internal/infra"
	"github.com/Vaibhav-12521/Invento/internal/router"
	"github.com/Vaibhav-12521/Invento/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test env ─────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("invento"),
		tcPostgres.WithUsername("invento"),
		tcPostgres.WithPassword("invento"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	redisC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(redisURL)
	require.NoError(t, err)

	cfg := &config.Config{Env: "test", PDFStoragePath: t.TempDir()}
	dispatcher := worker.NewDispatcher(rdb)
	engine := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, db: db}
}

func createProduct(t *testing.T, env *testEnv, name string, price, cost float64, stock int) uint {
	t.Helper()
	resp := do(t, env.server, http.MethodPost, "/v1/products", jsonBody(t, map[string]any{
		"name":           name,
		"price":          price,
		"cost":           cost,
		"stock_quantity": stock,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_ProductCRUD(t *testing.T) {
	env := setupTestEnv(t)

	id := createProduct(t, env, "Widget", 19.99, 8.50, 25)

	resp := do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Name          string `json:"name"`
		StockQuantity int    `json:"stock_quantity"`
		MinStockLevel int    `json:"min_stock_level"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 25, got.StockQuantity)
	assert.Equal(t, 5, got.MinStockLevel)

	resp = do(t, env.server, http.MethodPut, fmt.Sprintf("/v1/products/%d", id),
		jsonBody(t, map[string]any{"name": "Widget Mk II"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodDelete, fmt.Sprintf("/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_SaleDecrementsStock(t *testing.T) {
	env := setupTestEnv(t)
	id := createProduct(t, env, "Gizmo", 10, 4, 10)

	resp := do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"product_id": id,
		"quantity":   4,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale struct {
		ID          uint   `json:"id"`
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "40", sale.TotalAmount)

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	var got struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, 6, got.StockQuantity)

	// Oversell attempt: 409 and stock unchanged
	resp = do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"product_id": id,
		"quantity":   7,
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	decodeJSON(t, resp, &got)
	assert.Equal(t, 6, got.StockQuantity)
}

func TestE2E_ConcurrentSalesNeverOversell(t *testing.T) {
	env := setupTestEnv(t)
	id := createProduct(t, env, "Limited Run", 50, 20, 5)

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
				"product_id": id,
				"quantity":   3,
			}))
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created := 0
	conflicted := 0
	for _, s := range statuses {
		switch s {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, conflicted)

	resp := do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	var got struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, 2, got.StockQuantity)
}

func TestE2E_DeleteProductWithSalesRejected(t *testing.T) {
	env := setupTestEnv(t)
	id := createProduct(t, env, "Anchor", 30, 12, 10)

	resp := do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"product_id": id,
		"quantity":   1,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodDelete, fmt.Sprintf("/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_WindowedReportBoundaries(t *testing.T) {
	env := setupTestEnv(t)
	id := createProduct(t, env, "Seasonal", 20, 10, 100)

	for qty, age := range map[int]int{1: 29, 2: 31} {
		resp := do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
			"product_id": id,
			"quantity":   qty,
		}))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var sale struct {
			ID uint `json:"id"`
		}
		decodeJSON(t, resp, &sale)

		// Backdate the sale
		err := env.db.Exec("UPDATE sales SET sale_date = ? WHERE id = ?",
			time.Now().UTC().AddDate(0, 0, -age), sale.ID).Error
		require.NoError(t, err)
	}

	resp := do(t, env.server, http.MethodGet, "/v1/reports/sales?days=30", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		TotalSales   int64  `json:"total_sales"`
		TotalRevenue string `json:"total_revenue"`
	}
	decodeJSON(t, resp, &report)
	assert.Equal(t, int64(1), report.TotalSales) // only the 29-day-old sale
	assert.Equal(t, "20", report.TotalRevenue)
}

func TestE2E_PriceEditPreservesHistoricalTotals(t *testing.T) {
	env := setupTestEnv(t)
	id := createProduct(t, env, "Classic", 40, 15, 10)

	resp := do(t, env.server, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"product_id": id,
		"quantity":   2,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &sale)

	resp = do(t, env.server, http.MethodPut, fmt.Sprintf("/v1/products/%d", id),
		jsonBody(t, map[string]any{"price": 99}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/v1/sales/%d", sale.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, resp, &got)
	assert.Equal(t, "80", got.TotalAmount) // 40 × 2, frozen at sale time
}
