package handler

import (
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/security"
	"CommandCenter/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = nil
	})

	security.Init("logout-secret", "test", 1)
	token, err := security.GenerateToken("editor-1", "e@example.com", "EDITOR")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(service.NewUserService(nil))
	r := gin.New()
	r.Use(middleware.AuthMiddleware(nil))
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/ideas/generate", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := call(http.MethodGet, "/api/ideas/generate"); code != http.StatusOK {
		t.Fatalf("before logout: %d", code)
	}
	if code := call(http.MethodPost, "/api/auth/logout"); code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}

	sig, _ := security.ExtractSignature(token)
	key := consts.TokenBlacklistKey + sig
	if !mr.Exists(key) {
		t.Fatalf("revocation key %s not written", key)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("revocation ttl = %v, want within token lifetime", ttl)
	}

	if code := call(http.MethodGet, "/api/ideas/generate"); code != http.StatusUnauthorized {
		t.Fatalf("revoked token accepted: %d", code)
	}
}
