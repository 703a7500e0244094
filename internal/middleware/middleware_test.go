package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims middleware.AccessClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"employee_id": c.GetString("employee_id"),
			"ctx_role":    contextutil.GetRole(ctx),
		})
	})

	t.Run("valid token", func(t *testing.T) {
		tok := signToken(t, middleware.AccessClaims{
			EmployeeID: "emp-1",
			Role:       "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":"emp-1"`)
		assert.Contains(t, w.Body.String(), `"ctx_role":"admin"`)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signToken(t, middleware.AccessClaims{
			EmployeeID: "emp-1",
			Role:       "staff",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("token without role", func(t *testing.T) {
		tok := signToken(t, middleware.AccessClaims{EmployeeID: "emp-1"})
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Role not found")
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
}

func (f fakeRBAC) Enforce(role, resource, action string) (bool, error) {
	return f.allowed, f.err
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Set("employee_id", "emp-1")
		c.Next()
	}
}

func TestRBACAuthorize(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		rbac   fakeRBAC
		status int
	}{
		{"allowed", "admin", fakeRBAC{allowed: true}, http.StatusOK},
		{"denied", "staff", fakeRBAC{}, http.StatusForbidden},
		{"enforcer error", "staff", fakeRBAC{err: errors.New("boom")}, http.StatusInternalServerError},
		{"no role", "", fakeRBAC{allowed: true}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(withRole(tc.role), middleware.RBACAuthorize(tc.rbac, "report", "read"))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRateLimitByUser(t *testing.T) {
	r := newRouter(withRole("staff"), middleware.RateLimitByUser(0.001, 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/leaves:emp-1:key-1"

	t.Run("replays stored result", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"id":"leave-1"}`)

		r := newRouter(withRole("staff"), middleware.Idempotency(rdb))
		r.POST("/leaves", func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		})

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"leave-1"}}`, w.Body.String())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		r := newRouter(withRole("staff"), middleware.Idempotency(rdb))
		r.POST("/leaves", func(c *gin.Context) { c.Status(http.StatusCreated) })

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("first request runs and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"id":"leave-2"}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		r := newRouter(withRole("staff"), middleware.Idempotency(rdb))
		r.POST("/leaves", func(c *gin.Context) {
			defer middleware.ReleaseIdempotencyLock(c, rdb)
			middleware.SaveIdempotentResult(c, rdb, map[string]string{"id": "leave-2"})
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no header passes through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r := newRouter(withRole("staff"), middleware.Idempotency(rdb))
		r.POST("/leaves", func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
