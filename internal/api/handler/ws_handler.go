package handler

import (
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

// WsHandler 将 redis 事件频道推送给后台页面
type WsHandler struct {
	upgrader websocket.Upgrader
}

// NewWsHandler allowOrigins 为空时不校验来源
func NewWsHandler(allowOrigins []string) *WsHandler {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = struct{}{}
	}
	return &WsHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// Connect 鉴权由 AuthMiddleware 完成 (支持 ?token=)
func (s *WsHandler) Connect(c *gin.Context) {
	if redis.Rdb == nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	userID := middleware.CurrentActor(c).UserID

	// 升级 Websocket
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 订阅 Redis 事件总线
	pubsub := redis.Subscribe(ctx, consts.EventChannel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg, ok := <-redisCh:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("WS 连接已断开", "userID", userID)
			return
		}
	}
}
