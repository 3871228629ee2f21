package logger

import (
	"CommandCenter/internal/api/config"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 注册 JSON 访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/ping"},
		Formatter: accessLogFormatter,
	}))
	r.Use(gin.Recovery())
}

func accessLogFormatter(p gin.LogFormatterParams) string {
	traceID, _ := p.Keys[TraceIDKey].(string)
	if traceID == "" && p.Request != nil {
		traceID, _ = p.Request.Context().Value(TraceIDKey).(string)
	}

	var index, token string
	if config.Cfg != nil {
		index = config.Cfg.Logstash.Index
		token = config.Cfg.Logstash.Token
	}

	return fmt.Sprintf(
		`{"time":"%s","level":"INFO","msg":"HTTP_ACCESS","trace_id":"%s","log_token":"%s","target_index":"%s","client_ip":"%s","method":"%s","path":"%s","status":%d,"latency":"%v"}`+"\n",
		p.TimeStamp.Format(time.RFC3339),
		traceID,
		token,
		index,
		p.ClientIP,
		p.Method,
		accessPath(p),
		p.StatusCode,
		p.Latency,
	)
}

// accessPath 只记录路径，query 中可能带有 token
func accessPath(p gin.LogFormatterParams) string {
	if p.Request != nil && p.Request.URL != nil {
		return p.Request.URL.Path
	}
	path, _, _ := strings.Cut(p.Path, "?")
	return path
}
