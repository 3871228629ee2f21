package logger

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAccessLogOmitsQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/admin/ws?token=eyJSECRET.PAYLOAD.SIG", nil)
	line := accessLogFormatter(gin.LogFormatterParams{
		Request:    req,
		TimeStamp:  time.Now(),
		StatusCode: 101,
		Method:     "GET",
		Path:       "/api/admin/ws?token=eyJSECRET.PAYLOAD.SIG",
	})

	if strings.Contains(line, "eyJSECRET") {
		t.Fatalf("token leaked into access log: %s", line)
	}
	if !strings.Contains(line, `"path":"/api/admin/ws"`) {
		t.Fatalf("path missing: %s", line)
	}
}
