package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/apperr"
	"mars_shop/internal/auth"
	"mars_shop/internal/i18n"
	"mars_shop/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]models.User

func (f fakeAuth) Authenticate(_ context.Context, raw string) (auth.Session, error) {
	u, ok := f[raw]
	if !ok {
		return auth.Session{}, apperr.Auth("Session invalide ou expirée")
	}
	return auth.Session{Token: raw, User: u}, nil
}

var users = fakeAuth{
	"user-token":  {ID: "u1", Email: "john@example.com"},
	"admin-token": {ID: "a1", Email: "admin@marsshop.com", IsAdmin: true},
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": Owner(c), "lang": Lang(c)})
	})
	r.GET("/x", handlers...)
	r.POST("/x", handlers...)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newRouter(AuthRequired(users))

	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user:u1")

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "user-token"})
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter(AuthRequired(users), RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestOptionalAuthIgnoresBadTokens(t *testing.T) {
	r := newRouter(OptionalAuth(users))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"owner":""`)
}

func TestSessionsAssignGuestAndLanguage(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)
	r := newRouter(Sessions(store), OptionalAuth(users))

	w := do(r, httptest.NewRequest(http.MethodGet, "/x?lang=fr", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"owner":"guest:`)
	assert.Contains(t, w.Body.String(), `"lang":"fr"`)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)

	// Langue mémorisée : elle l'emporte sur Accept-Language.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("Accept-Language", "ar")
	w2 := do(r, req)
	assert.Contains(t, w2.Body.String(), `"lang":"fr"`)
	assert.Empty(t, w2.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Accept-Language", "ar-TN,ar;q=0.9")
	assert.Contains(t, do(r, req).Body.String(), `"lang":"ar"`)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("Authorization", "Bearer user-token")
	assert.Contains(t, do(r, req).Body.String(), `"owner":"user:u1"`)
}

func TestSaveLanguage(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false)
	r := gin.New()
	r.Use(Sessions(store))
	r.PUT("/lang", func(c *gin.Context) {
		require.NoError(t, SaveLanguage(c, i18n.Arabic))
		c.Status(http.StatusNoContent)
	})
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, string(Lang(c))) })

	w := do(r, httptest.NewRequest(http.MethodPut, "/lang", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(cookies[len(cookies)-1])
	assert.Equal(t, "ar", do(r, req).Body.String())
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newRouter(RateLimit(client, Limit{Name: "t", Max: 2, Window: time.Minute, Message: "stop"}))
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}

func TestLoginRateLimitCountsFailuresOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.POST("/login", LoginRateLimit(client), func(c *gin.Context) {
		if c.Query("ok") == "1" {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusUnauthorized)
	})

	for range 10 {
		assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodPost, "/login?ok=1", nil)).Code)
	}
	for range LoginMaxAttempts {
		assert.Equal(t, http.StatusUnauthorized, do(r, httptest.NewRequest(http.MethodPost, "/login", nil)).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(r, httptest.NewRequest(http.MethodPost, "/login?ok=1", nil)).Code)
}

func TestRateLimitWithoutRedis(t *testing.T) {
	r := newRouter(APIRateLimit(nil))
	assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}
