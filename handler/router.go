package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hub-assistant/internal/domain"
	"hub-assistant/internal/usecase"
)

// NewRouter wires the chat API and, when assets is non-nil, the static chat
// widget served at "/".
func NewRouter(a Answerer, assets fs.FS, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/api/chat", func(c *gin.Context) {
		corrID := strings.TrimSpace(c.GetHeader(correlationHeader))
		if corrID == "" {
			corrID = uuid.NewString()
		}
		c.Header(correlationHeader, corrID)
		log := logger.With("correlation_id", corrID)

		var req domain.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.WarnContext(c.Request.Context(), "invalid request body", "err", err)
			c.JSON(http.StatusOK, domain.ChatReply{Reply: usecase.ReplyEmptyMessage})
			return
		}
		c.JSON(http.StatusOK, domain.ChatReply{Reply: answer(c.Request.Context(), log, a, req)})
	})

	if assets != nil {
		r.StaticFS("/static", http.FS(assets))
		r.GET("/", func(c *gin.Context) {
			c.FileFromFS("/", http.FS(assets))
		})
	}
	return r
}
