package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShashankBagda/AI-Restaurant/live"
	"github.com/ShashankBagda/AI-Restaurant/router"
	"github.com/ShashankBagda/AI-Restaurant/services"
	"github.com/ShashankBagda/AI-Restaurant/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	m.Run()
}

// newTestServer boots the whole stack against a fresh in-memory database,
// seeded the same way a first production boot is.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	autoMigrate(db)
	seed(db)

	hub := live.NewHub()
	sessions := services.NewSessionService(db, "integration-secret", time.Hour)
	catalog := services.NewCatalogService(db)
	scheduler := services.NewScheduler(db)
	inventory := services.NewInventoryService(db)
	orders := services.NewOrderService(db, catalog, scheduler, inventory, hub)
	recs := services.NewRecommendationService(db, catalog)

	return router.SetupRouter(router.Deps{
		DB:       db,
		Sessions: sessions,
		Catalog:  catalog,
		Orders:   orders,
		Invent:   inventory,
		Recs:     recs,
		Hub:      hub,
	})
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Token", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func login(t *testing.T, r *gin.Engine, userID, password string) string {
	t.Helper()
	code, env := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"device_id": "test-device",
		"user_id":   userID,
		"password":  password,
		"table_id":  "T1",
	})
	require.Equal(t, http.StatusOK, code, "login as %s: %s", userID, env.Message)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestOrderLifecycle(t *testing.T) {
	r := newTestServer(t)

	customer := login(t, r, "demo", "demo123")
	admin := login(t, r, "admin", "admin123")

	// The seeded menu is visible to any session.
	code, env := doJSON(t, r, http.MethodGet, "/api/menu", customer, nil)
	require.Equal(t, http.StatusOK, code)
	items, ok := env.Data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 6)

	// Two margheritas and a coke: 2*250 + 60.
	code, env = doJSON(t, r, http.MethodPost, "/api/orders", customer, gin.H{
		"table_id": "T1",
		"items": []gin.H{
			{"item_id": "margherita", "quantity": 2},
			{"item_id": "coke", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, 560.0, env.Data["total"])
	assert.Equal(t, "placed", env.Data["status"])
	assert.Equal(t, "unpaid", env.Data["payment_status"])

	orderID, ok := env.Data["order_id"].(float64)
	require.True(t, ok)
	orderPath := "/api/orders/" + strconv.FormatUint(uint64(orderID), 10)

	// First payment succeeds, second is rejected.
	code, _ = doJSON(t, r, http.MethodPost, orderPath+"/pay", customer, gin.H{"method": "card"})
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, r, http.MethodPost, orderPath+"/pay", customer, gin.H{"method": "card"})
	assert.Equal(t, http.StatusConflict, code)

	// Rating is gated until the order is served.
	code, _ = doJSON(t, r, http.MethodPost, orderPath+"/rate", customer, gin.H{"rating": 5})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = doJSON(t, r, http.MethodPut, orderPath, admin, gin.H{"status": "served"})
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, r, http.MethodPost, orderPath+"/rate", customer, gin.H{"rating": 5, "comment": "perfect"})
	assert.Equal(t, http.StatusOK, code)

	// Billing reflects the single settled payment.
	code, env = doJSON(t, r, http.MethodGet, "/api/billing", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 560.0, env.Data["total"])

	// Stock dropped from the seeded 50 by the ordered quantities.
	code, env = doJSON(t, r, http.MethodGet, "/api/inventory", admin, nil)
	require.Equal(t, http.StatusOK, code)
	counters, ok := env.Data["items"].([]interface{})
	require.True(t, ok)
	stock := map[string]float64{}
	for _, raw := range counters {
		m := raw.(map[string]interface{})
		stock[m["item_id"].(string)], _ = m["stock"].(float64)
	}
	assert.Equal(t, 48.0, stock["margherita"])
	assert.Equal(t, 49.0, stock["coke"])
}

func TestAuthGates(t *testing.T) {
	r := newTestServer(t)

	// No token.
	code, _ := doJSON(t, r, http.MethodGet, "/api/menu", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Garbage token.
	code, _ = doJSON(t, r, http.MethodGet, "/api/menu", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Wrong password.
	code, _ = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"device_id": "test-device",
		"user_id":   "demo",
		"password":  "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	// Customer on an admin route.
	customer := login(t, r, "demo", "demo123")
	code, _ = doJSON(t, r, http.MethodGet, "/api/billing", customer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Staff can read the kitchen view but not billing.
	staff := login(t, r, "chef1", "chef123")
	code, _ = doJSON(t, r, http.MethodGet, "/api/orders", staff, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodGet, "/api/billing", staff, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Logout invalidates the token immediately.
	code, _ = doJSON(t, r, http.MethodPost, "/api/logout", customer, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodGet, "/api/menu", customer, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterFlow(t *testing.T) {
	r := newTestServer(t)

	// Open customer signup, then login with the new account.
	code, env := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"user_id":  "newbie",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, "customer", env.Data["role"])
	login(t, r, "newbie", "hunter2")

	// Duplicate id.
	code, _ = doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"user_id":  "newbie",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, code)

	// Staff accounts need an admin session.
	code, _ = doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"user_id":   "chef2",
		"password":  "chef456",
		"role":      "staff",
		"specialty": "desserts",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	admin := login(t, r, "admin", "admin123")
	code, _ = doJSON(t, r, http.MethodPost, "/api/register", admin, gin.H{
		"user_id":   "chef2",
		"password":  "chef456",
		"role":      "staff",
		"specialty": "desserts",
	})
	require.Equal(t, http.StatusCreated, code)
	login(t, r, "chef2", "chef456")
}
