package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizbank/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientIPOf(t *testing.T, cfg *config.Config, remoteAddr, forwardedFor string) string {
	t.Helper()
	r, err := NewGinEngine(cfg)
	require.NoError(t, err)
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewGinEngine_IgnoresForwardedForByDefault(t *testing.T) {
	cfg := &config.Config{Server: config.Server{GinMode: gin.TestMode}}
	assert.Equal(t, "10.0.0.1", clientIPOf(t, cfg, "10.0.0.1:4000", "1.2.3.4"))
}

func TestNewGinEngine_HonorsTrustedProxy(t *testing.T) {
	cfg := &config.Config{Server: config.Server{GinMode: gin.TestMode, TrustedProxies: []string{"10.0.0.0/8"}}}
	assert.Equal(t, "1.2.3.4", clientIPOf(t, cfg, "10.0.0.1:4000", "1.2.3.4"))
	assert.Equal(t, "172.16.0.9", clientIPOf(t, cfg, "172.16.0.9:4000", "1.2.3.4"), "untrusted peer")
}

func TestNewGinEngine_RejectsBadProxyList(t *testing.T) {
	_, err := NewGinEngine(&config.Config{Server: config.Server{GinMode: gin.TestMode, TrustedProxies: []string{"not-an-ip"}}})
	assert.Error(t, err)
}
