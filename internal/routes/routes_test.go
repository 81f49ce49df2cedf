package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/admin"
	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/catalog"
	"mars_shop/internal/middleware"
	"mars_shop/internal/orders"
	"mars_shop/internal/repository"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repos := repository.NewMemory()
	require.NoError(t, repository.SeedCatalog(ctx, repos))
	require.NoError(t, auth.SeedDemoUsers(ctx, repos.Users))

	carts := cart.NewService(cart.NewMemoryStorage(), repos.Products)
	r := gin.New()
	RegisterRoutes(r, Deps{
		Auth:    auth.NewService(repos.Users, auth.NewTokens("test-secret", time.Hour), auth.NewMemoryRevoker(), nil),
		Catalog: catalog.NewService(catalog.Deps{Products: repos.Products, Categories: repos.Categories}),
		Carts:   carts,
		Orders: orders.NewService(orders.Deps{
			Orders:   repos.Orders,
			Users:    repos.Users,
			Products: repos.Products,
			Carts:    carts,
			BaseURL:  "https://marsshop.tn",
		}),
		Admin:    admin.NewService(repos),
		Sessions: middleware.NewSessionStore("session-secret", false),
	})
	return r
}

// browser rejoue les cookies reçus, comme un navigateur.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, r *gin.Engine) *browser {
	return &browser{t: t, router: r, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	b.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(b.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (b *browser) login(email, password string) {
	b.t.Helper()
	rec := b.do(http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": password})
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))

	for _, path := range []string{"/api/orders", "/api/auth/me", "/api/admin/dashboard"} {
		rec := b.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))
	b.login("john@example.com", "password")

	rec := b.do(http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = b.do(http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginAndMe(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))

	rec := b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@marsshop.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	b.login("admin@marsshop.com", "admin")
	require.Contains(t, b.cookies, middleware.TokenCookie)

	rec = b.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "admin@marsshop.com", me["email"])
	assert.Equal(t, true, me["isAdmin"])
	assert.NotContains(t, me, "PasswordHash")

	rec = b.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = b.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerTokenIsRevokedOnLogout(t *testing.T) {
	r := newTestRouter(t)
	b := newBrowser(t, r)
	rec := b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "john@example.com", "password": "password"})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	api := newBrowser(t, r)
	bearer := []string{"Authorization", "Bearer " + token}
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", nil, bearer...).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/auth/logout", nil, bearer...).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", nil, bearer...).Code)
}

func TestGuestCheckoutFlow(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))

	rec := b.do(http.MethodPost, "/api/cart", gin.H{"productId": "4", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cartView := decode(t, rec)
	assert.EqualValues(t, 480, cartView["total"])
	assert.EqualValues(t, 2, cartView["itemCount"])

	customer := gin.H{"customerName": "Sami", "customerPhone": "20 000 000", "customerAddress": "Tunis"}
	rec = b.do(http.MethodPost, "/api/orders/checkout", customer, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	assert.EqualValues(t, 480, order["total"])
	assert.Equal(t, "pending", order["status"])

	// Même clé : la commande est rejouée, pas dupliquée.
	rec = b.do(http.MethodPost, "/api/orders/checkout", customer, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order["id"], decode(t, rec)["id"])

	rec = b.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["items"])

	rec = b.do(http.MethodPost, "/api/orders/checkout", customer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuestCartMergesOnLogin(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))

	rec := b.do(http.MethodPost, "/api/cart", gin.H{"productId": "3"})
	require.Equal(t, http.StatusOK, rec.Code)

	b.login("john@example.com", "password")
	rec = b.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode(t, rec)
	assert.EqualValues(t, 75, view["total"])
}

func TestAdminDashboardAndExport(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))
	b.login("admin@marsshop.com", "admin")

	rec := b.do(http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 10, stats["totalProducts"])
	assert.EqualValues(t, 2, stats["totalUsers"])

	rec = b.do(http.MethodGet, "/api/admin/orders?status=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.do(http.MethodGet, "/api/admin/export/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
}

func TestLanguageIsRemembered(t *testing.T) {
	b := newBrowser(t, newTestRouter(t))

	rec := b.do(http.MethodGet, "/api/i18n/xx", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = b.do(http.MethodPut, "/api/i18n/language", gin.H{"language": "fr"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = b.do(http.MethodGet, "/api/products/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "240.000 TND", decode(t, rec)["displayPrice"])

	rec = b.do(http.MethodGet, "/api/i18n/ar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["rtl"])
}
