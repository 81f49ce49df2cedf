package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NotFound("Produit introuvable"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestStatusMapping(t *testing.T) {
	cases := map[error]int{
		Validation("x", "name"):           http.StatusBadRequest,
		NotFound("x"):                     http.StatusNotFound,
		Auth("x"):                         http.StatusUnauthorized,
		Forbidden("x"):                    http.StatusForbidden,
		Conflict("x"):                     http.StatusConflict,
		Transient("redis", errors.New("")): http.StatusServiceUnavailable,
		errors.New("x"):                   http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, Status(err), err.Error())
	}
}

func TestRespondHidesBackendDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, Transient("lecture commandes", errors.New("gocql: no hosts available")))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "gocql")
	assert.True(t, c.IsAborted())
}

func TestRespondValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	Respond(c, Validation("Champs requis manquants", "customerName", "customerPhone"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Champs requis manquants","fields":["customerName","customerPhone"]}`, w.Body.String())
}
