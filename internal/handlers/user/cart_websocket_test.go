package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/auth"
	"mars_shop/internal/cart"
	"mars_shop/internal/middleware"
	"mars_shop/internal/repository"
)

type wsFixture struct {
	mr      *miniredis.Miniredis
	carts   *cart.Service
	session auth.Session
	url     string
}

func newWSFixture(t *testing.T, origins ...string) wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repos := repository.NewMemory()
	require.NoError(t, repository.SeedCatalog(ctx, repos))
	require.NoError(t, auth.SeedDemoUsers(ctx, repos.Users))

	storage := cart.NewRedisStorage(rdb)
	carts := cart.NewService(storage, repos.Products)
	authSvc := auth.NewService(repos.Users, auth.NewTokens("ws-secret", time.Hour), auth.NewMemoryRevoker(), nil)
	session, err := authSvc.Login(ctx, "john@example.com", "password")
	require.NoError(t, err)

	h := New(Deps{Auth: authSvc, Carts: carts, Events: storage, AllowedOrigins: origins})
	r := gin.New()
	r.GET("/ws", middleware.OptionalAuth(authSvc), h.CartWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return wsFixture{mr: mr, carts: carts, session: session, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"}
}

func (f wsFixture) dial(origin string) (*websocket.Conn, *http.Response, error) {
	header := http.Header{"Authorization": {"Bearer " + f.session.Token}}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(f.url, header)
}

func TestCartWebSocketPushesUpdates(t *testing.T) {
	ctx := context.Background()
	f := newWSFixture(t)
	mr, carts, session := f.mr, f.carts, f.session

	conn, _, err := f.dial("")
	require.NoError(t, err)
	defer conn.Close()

	var msg cartMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "connected", msg.Type)
	assert.Empty(t, msg.Cart.Items)

	owner := cart.UserOwner(session.User.ID)
	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(cart.Key(owner))[cart.Key(owner)] == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = carts.Add(ctx, owner, "4", 2)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "cart_updated", msg.Type)
	assert.Equal(t, 2, msg.Cart.ItemCount)
	assert.Equal(t, "480", msg.Cart.Total.String())
}

func TestCartWebSocketRequiresOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(Deps{})
	r := gin.New()
	r.GET("/ws", h.CartWebSocket)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartWebSocketChecksOrigin(t *testing.T) {
	f := newWSFixture(t, "http://localhost:3000/")

	_, resp, err := f.dial("http://evil.example")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := f.dial("http://localhost:3000")
	require.NoError(t, err)
	conn.Close()
}
