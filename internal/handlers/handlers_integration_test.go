package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bistro/internal/config"
	"bistro/internal/database"
	"bistro/internal/models"
	"bistro/internal/repositories"
	"bistro/internal/routes"
	"bistro/internal/services"
	"bistro/pkg/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const adminEmail = "admin@bistro.test"

type fakeGateway struct {
	amounts []int64
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount int64) (*payment.Intent, error) {
	g.amounts = append(g.amounts, amount)
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: amount}, nil
}

type testEnv struct {
	app     *fiber.App
	auth    *services.AuthService
	store   *database.Store
	gateway *fakeGateway
}

// token signs a token for email the way POST /jwt would.
func (e *testEnv) token(t *testing.T, email string) string {
	tok, err := e.auth.IssueToken(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return tok
}

func newEnv(t *testing.T, store *database.Store) *testEnv {
	auth := services.NewAuthService("test_jwt_secret", time.Hour)
	gw := &fakeGateway{}
	app := routes.NewApp(routes.Deps{Store: store, Auth: auth, Gateway: gw})

	require.NoError(t, store.Users.Create(context.Background(), &models.User{
		Name:  "Admin",
		Email: adminEmail,
		Role:  models.RoleAdmin,
	}))
	return &testEnv{app: app, auth: auth, store: store, gateway: gw}
}

// eachBackend runs fn against in-memory SQLite through GORM and against the in-memory store.
func eachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	t.Run("sqlite", func(t *testing.T) {
		dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
		require.NoError(t, err)
		require.NoError(t, repositories.AutoMigrate(db))
		store := database.NewGORM(db, config.DriverSQLite)
		t.Cleanup(func() { _ = store.Close(context.Background()) })
		fn(t, newEnv(t, store))
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, newEnv(t, database.NewMemory()))
	})
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func insertedID(t *testing.T, body []byte) string {
	var res struct {
		InsertedID *string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotNil(t, res.InsertedID, string(body))
	return *res.InsertedID
}

func TestHealth(t *testing.T) {
	env := newEnv(t, database.NewMemory())

	resp, body := doRequest(t, env.app, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "boss server working", string(body))

	resp, body = doRequest(t, env.app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)
	assert.Contains(t, string(body), `"store":"memory"`)
}

func TestIssueToken(t *testing.T) {
	env := newEnv(t, database.NewMemory())

	resp, body := doRequest(t, env.app, http.MethodPost, "/jwt", map[string]string{"email": "a@b.test"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	claims, err := env.auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.test", claims["email"])

	resp, _ = doRequest(t, env.app, http.MethodGet, "/payments/a@b.test", nil, res.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesWithoutToken(t *testing.T) {
	env := newEnv(t, database.NewMemory())

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/admin-stats"},
		{http.MethodGet, "/order-stats"},
		{http.MethodPost, "/menu"},
		{http.MethodPatch, "/menu/" + uuid.New().String()},
		{http.MethodDelete, "/users/" + uuid.New().String()},
	} {
		resp, body := doRequest(t, env.app, r.method, r.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, r.method+" "+r.path)
		assert.JSONEq(t, `{"message":"unauthorized access"}`, string(body))
	}

	resp, _ := doRequest(t, env.app, http.MethodGet, "/users", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesForNonAdmin(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		tok := env.token(t, "diner@bistro.test")

		resp, body := doRequest(t, env.app, http.MethodGet, "/admin-stats", nil, tok)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.JSONEq(t, `{"message":"forbidden access"}`, string(body))

		resp, _ = doRequest(t, env.app, http.MethodGet, "/users", nil, env.token(t, adminEmail))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestUsers(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		user := map[string]string{"name": "Dee", "email": "dee@bistro.test", "role": "admin", "password": "secret123"}

		resp, body := doRequest(t, env.app, http.MethodPost, "/users", user, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		id := insertedID(t, body)

		resp, body = doRequest(t, env.app, http.MethodPost, "/users", user, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"User already exist","insertedId":null}`, string(body))

		admin := env.token(t, adminEmail)
		resp, body = doRequest(t, env.app, http.MethodGet, "/users", nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var users []models.User
		require.NoError(t, json.Unmarshal(body, &users))
		assert.Len(t, users, 2)
		for _, u := range users {
			assert.Empty(t, u.Password)
		}

		dee := env.token(t, "dee@bistro.test")
		resp, body = doRequest(t, env.app, http.MethodGet, "/user/admin/dee@bistro.test", nil, dee)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"admin":false}`, string(body))

		resp, _ = doRequest(t, env.app, http.MethodGet, "/users/admin/"+adminEmail, nil, dee)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, body = doRequest(t, env.app, http.MethodPatch, "/users/admin/"+id, nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, string(body))

		resp, body = doRequest(t, env.app, http.MethodGet, "/users/admin/dee@bistro.test", nil, dee)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"admin":true}`, string(body))

		resp, body = doRequest(t, env.app, http.MethodDelete, "/users/"+id, nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deletedCount":1}`, string(body))

		resp, _ = doRequest(t, env.app, http.MethodDelete, "/users/not-an-id", nil, admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestMenu(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.token(t, adminEmail)
		item := models.MenuItem{Name: "Tomato Soup", Category: "soup", Price: 5, Recipe: "tomatoes"}

		resp, body := doRequest(t, env.app, http.MethodPost, "/menu", item, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		id := insertedID(t, body)

		resp, body = doRequest(t, env.app, http.MethodGet, "/menu/"+id, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.MenuItem
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "soup", got.Category)

		item.Price = 6.5
		item.Category = "starter"
		resp, body = doRequest(t, env.app, http.MethodPatch, "/menu/"+id, item, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, string(body))

		_, body = doRequest(t, env.app, http.MethodGet, "/menu/"+id, nil, "")
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "starter", got.Category)
		assert.Equal(t, 6.5, got.Price)

		resp, _ = doRequest(t, env.app, http.MethodPost, "/menu", map[string]interface{}{"price": 3}, admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, body = doRequest(t, env.app, http.MethodDelete, "/menu/"+id, nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deletedCount":1}`, string(body))

		resp, _ = doRequest(t, env.app, http.MethodGet, "/menu/"+id, nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = doRequest(t, env.app, http.MethodGet, "/menu/xyz", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, body = doRequest(t, env.app, http.MethodGet, "/menu", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(body))
	})
}

func TestPaymentsForOtherEmail(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		resp, body := doRequest(t, env.app, http.MethodGet, "/payments/b@bistro.test", nil, env.token(t, "a@bistro.test"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Forbidden Access"}`, string(body))
	})
}

func TestCompletePaymentClearsListedCarts(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		const email = "diner@bistro.test"
		var cartIDs []string
		for _, name := range []string{"Soup", "Salad", "Pie"} {
			resp, body := doRequest(t, env.app, http.MethodPost, "/carts", models.CartItem{
				Email: email, MenuID: uuid.New().String(), Name: name, Price: 4,
			}, "")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			cartIDs = append(cartIDs, insertedID(t, body))
		}

		resp, body := doRequest(t, env.app, http.MethodPost, "/payments", models.Payment{
			Email:         email,
			Price:         8,
			TransactionID: "pi_123",
			CartIDs:       cartIDs[:2],
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var res models.PaymentResult
		require.NoError(t, json.Unmarshal(body, &res))
		assert.NotEmpty(t, res.InsertedID)
		assert.Equal(t, int64(2), res.DeletedCount)

		_, body = doRequest(t, env.app, http.MethodGet, "/carts?email="+email, nil, "")
		var left []models.CartItem
		require.NoError(t, json.Unmarshal(body, &left))
		require.Len(t, left, 1)
		assert.Equal(t, cartIDs[2], left[0].ID)

		resp, body = doRequest(t, env.app, http.MethodGet, "/payments/"+email, nil, env.token(t, email))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var payments []models.Payment
		require.NoError(t, json.Unmarshal(body, &payments))
		require.Len(t, payments, 1)
		assert.Equal(t, "pi_123", payments[0].TransactionID)
		assert.Equal(t, "pending", payments[0].Status)

		resp, body = doRequest(t, env.app, http.MethodDelete, "/carts/"+cartIDs[2], nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deletedCount":1}`, string(body))
	})
}

func TestStats(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.token(t, adminEmail)

		resp, body := doRequest(t, env.app, http.MethodGet, "/admin-stats", nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"totalUsers":1,"totalMenuItems":0,"totalOrders":0,"revenue":0}`, string(body))

		var ids []string
		for _, item := range []models.MenuItem{
			{Name: "Tomato Soup", Category: "soup", Price: 4},
			{Name: "Onion Soup", Category: "soup", Price: 6},
		} {
			_, body := doRequest(t, env.app, http.MethodPost, "/menu", item, admin)
			ids = append(ids, insertedID(t, body))
		}

		resp, body = doRequest(t, env.app, http.MethodPost, "/payments", models.Payment{
			Email:       "diner@bistro.test",
			Price:       10,
			MenuItemIDs: ids,
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		resp, body = doRequest(t, env.app, http.MethodGet, "/order-stats", nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[{"category":"soup","quantity":2,"revenue":10}]`, string(body))

		resp, body = doRequest(t, env.app, http.MethodGet, "/admin-stats", nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"totalUsers":1,"totalMenuItems":2,"totalOrders":1,"revenue":10}`, string(body))
	})
}

func TestPaymentWithUnknownMenuIDs(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.token(t, adminEmail)
		_, body := doRequest(t, env.app, http.MethodPost, "/menu", models.MenuItem{Name: "Pie", Category: "dessert", Price: 6}, admin)
		pie := insertedID(t, body)

		resp, body := doRequest(t, env.app, http.MethodPost, "/payments", models.Payment{
			Email:       "diner@bistro.test",
			Price:       6,
			MenuItemIDs: []string{pie, strings.Repeat("f", 40), "legacy-id"},
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		resp, body = doRequest(t, env.app, http.MethodGet, "/order-stats", nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[{"category":"dessert","quantity":1,"revenue":6}]`, string(body))

		resp, _ = doRequest(t, env.app, http.MethodPost, "/payments", models.Payment{
			Email:       "diner@bistro.test",
			MenuItemIDs: []string{strings.Repeat("f", 256)},
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newEnv(t, database.NewMemory())

	resp, body := doRequest(t, env.app, http.MethodPost, "/create-payment-intent", map[string]float64{"price": 19.99}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"clientSecret":"pi_test_secret"}`, string(body))
	assert.Equal(t, []int64{1998}, env.gateway.amounts)

	resp, _ = doRequest(t, env.app, http.MethodPost, "/create-payment-intent", map[string]float64{"price": -1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, env.app, http.MethodPost, "/create-payment-intent", map[string]float64{"price": 1e300}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []int64{1998}, env.gateway.amounts)
}

func TestCreatePaymentIntentNotConfigured(t *testing.T) {
	store := database.NewMemory()
	app := routes.NewApp(routes.Deps{
		Store:   store,
		Auth:    services.NewAuthService("test_jwt_secret", time.Hour),
		Gateway: payment.NewStripeGateway(""),
	})

	resp, _ := doRequest(t, app, http.MethodPost, "/create-payment-intent", map[string]float64{"price": 5}, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestReviews(t *testing.T) {
	env := newEnv(t, database.NewMemory())

	resp, body := doRequest(t, env.app, http.MethodGet, "/reviews", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}
