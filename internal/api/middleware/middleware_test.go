package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.GetString(PartitionKey)) }
	r.GET("/x", ok)
	r.POST("/x", ok)
	return r
}

func do(r http.Handler, method, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/x", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPartition(t *testing.T) {
	r := newEngine(Partition())
	assert.Equal(t, "guest", do(r, http.MethodGet, "", nil).Body.String())
	assert.Equal(t, "user:7", do(r, http.MethodGet, "", map[string]string{UserIDHeader: "7"}).Body.String())
}

func TestRateLimitPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	t.Cleanup(rl.Stop)
	r := newEngine(RateLimit(rl))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)
	w := do(r, http.MethodGet, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.True(t, rl.Allow("10.0.0.2"), "other clients have their own bucket")
}

func TestDeduplicationByPartitionAndBody(t *testing.T) {
	d := NewDeduplicator(time.Minute)
	t.Cleanup(d.Stop)
	r := newEngine(Partition(), d.Handler())

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, `{"a":1}`, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, `{"a":2}`, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, `{"a":1}`, map[string]string{UserIDHeader: "9"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "", nil).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(4))
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(r, http.MethodPost, "too large", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "ok", nil).Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Logger())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
