package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	byID map[string]string
}

func (f *fakeSessions) Create(ctx context.Context, accountID string) (string, error) {
	id := "sess-" + accountID
	f.byID[id] = accountID
	return id, nil
}

func (f *fakeSessions) GetAccountID(ctx context.Context, id string) (string, bool) {
	accountID, ok := f.byID[id]
	return accountID, ok
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func newMiddlewareRouter(sessions Sessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireSession(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": AccountIDFromContext(c)})
	})
	return r
}

func TestRequireSession(t *testing.T) {
	sessions := &fakeSessions{byID: map[string]string{"sess-ok": "acc-1"}}
	r := newMiddlewareRouter(sessions)

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())
	})

	t.Run("unknown session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-bogus"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())
	})

	t.Run("valid session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-ok"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"acc-1"}`, w.Body.String())
	})
}

func TestAccountIDFromContext_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, AccountIDFromContext(c))
}
