package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed bool
	err     error
	got     []interface{}
}

func (f *fakeEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	f.got = rvals
	return f.allowed, f.err
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "s3cret")

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"|"+c.GetString(ContextRole))
	})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "no token", status: http.StatusUnauthorized},
		{
			name:   "valid",
			header: "Bearer " + signedToken(t, "s3cret", jwt.MapClaims{"user_id": "u-1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}),
			status: http.StatusOK,
			body:   "u-1|admin",
		},
		{
			name:   "wrong secret",
			header: "Bearer " + signedToken(t, "other", jwt.MapClaims{"user_id": "u-1"}),
			status: http.StatusUnauthorized,
		},
		{
			name:   "expired",
			header: "Bearer " + signedToken(t, "s3cret", jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}),
			status: http.StatusUnauthorized,
		},
		{
			name:   "no user id",
			header: "Bearer " + signedToken(t, "s3cret", jwt.MapClaims{"role": "admin"}),
			status: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(enforcer RBACEnforcer, role string) int {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			if role != "" {
				c.Set(ContextRole, role)
			}
			c.Next()
		}, RBACAuthorize(enforcer, "payroll", "read"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w.Code
	}

	allow := &fakeEnforcer{allowed: true}
	assert.Equal(t, http.StatusNoContent, run(allow, "hr"))
	assert.Equal(t, []interface{}{"hr", "payroll", "read"}, allow.got)

	assert.Equal(t, http.StatusForbidden, run(&fakeEnforcer{}, "viewer"))
	assert.Equal(t, http.StatusForbidden, run(&fakeEnforcer{allowed: true}, ""))
	assert.Equal(t, http.StatusInternalServerError, run(&fakeEnforcer{err: errors.New("policy")}, "hr"))
	assert.Equal(t, http.StatusNoContent, run(nil, ""))
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	calls := 0
	r := gin.New()
	r.POST("/payrolls/generate/general", Idempotency(db), func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	cacheKey := "idemp:/payrolls/generate/general::abc"

	t.Run("first request takes the lock", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(true)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/generate/general", nil)
		req.Header.Set("Idempotency-Key", "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("in flight duplicate", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/generate/general", nil)
		req.Header.Set("Idempotency-Key", "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("replay", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(`{"payrolls":[]}`)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/generate/general", nil)
		req.Header.Set("Idempotency-Key", "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"payrolls":[]`)
		assert.Equal(t, 1, calls)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "bad id\nwith newline")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
}
