package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProvider struct {
	stores map[string]*store.Store
	err    error
}

func (f *fakeProvider) Get(ctx context.Context, sessionID string) (*store.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.stores[sessionID]
	if !ok {
		s = store.New(store.Options{SessionID: sessionID, Catalog: catalog.Default()})
		f.stores[sessionID] = s
	}
	return s, nil
}

func (f *fakeProvider) Transient() *store.Store {
	return store.New(store.Options{Catalog: catalog.Default()})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	provider := &fakeProvider{stores: map[string]*store.Store{}}

	r := gin.New()
	r.Use(Session(provider))
	handler := func(c *gin.Context) {
		s, ok := GetStoreFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, s.SessionID())
	}
	r.GET("/", handler)
	r.POST("/", handler)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, cookie.Value, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = serve(r, req)

	assert.Equal(t, cookie.Value, w.Body.String())
	assert.Len(t, provider.stores, 1)
}

func TestSession_CookielessReadsCreateNoSession(t *testing.T) {
	log, _ := test.NewNullLogger()
	manager := store.NewManager(store.ManagerConfig{Catalog: catalog.Default(), Logger: log})

	r := gin.New()
	r.Use(Session(manager))
	handler := func(c *gin.Context) {
		s, ok := GetStoreFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"count": s.CartCount()})
	}
	r.GET("/cart", handler)
	r.POST("/cart", handler)

	for i := 0; i < 1000; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/cart", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Result().Cookies())
	}
	assert.Zero(t, manager.Len())

	w := serve(r, httptest.NewRequest(http.MethodPost, "/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, 1, manager.Len())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Result().Cookies(), 1, "active sessions refresh their cookie")
	assert.Equal(t, []string{cookies[0].Value}, manager.Sessions())
}

func TestSession_ProviderFailure(t *testing.T) {
	r := gin.New()
	r.Use(Session(&fakeProvider{err: errors.New("backend down")}))
	r.POST("/", func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetStoreFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetStoreFromContext(c)
	assert.False(t, ok)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://shop.example.com", "*.partner.com"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type"},
	}}

	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://shop.example.com", true},
		{"https://api.partner.com", true},
		{"https://evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := serve(r, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRequestIDAndLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, requestID, entry.Data["request_id"])
	assert.Equal(t, "/ok", entry.Data["path"])

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = serve(r, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	r = gin.New()
	r.Use(Timeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRateLimit_WithoutRedis(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := &config.Config{Security: config.SecurityConfig{RateLimitPerMinute: 1}}

	r := gin.New()
	r.Use(RateLimit(cfg, nil, log))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.ContentLength = 64
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, req).Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
