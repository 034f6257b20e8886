package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor-server/internal/auth"
	"github.com/parlorchat/parlor-server/internal/config"
	"github.com/parlorchat/parlor-server/internal/core"
	"github.com/parlorchat/parlor-server/internal/metrics"
	"github.com/parlorchat/parlor-server/internal/store"
)

// NewServer builds the HTTP server: websocket endpoint, upload and history
// REST surface, OTP collaborator endpoints, static uploads, health and metrics.
// The websocket route is served on a plain mux beside the gin router: the
// upgrade must hijack the raw ResponseWriter, and gin's wrapper refuses to
// hijack once the 101 response has been written.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, m *metrics.Metrics, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	messageHandlers := NewMessageHandlers(st, logger)
	router.GET("/api/messages", messageHandlers.ListMessages)
	router.DELETE("/api/messages", AdminKeyMiddleware(cfg.AdminKey, logger), messageHandlers.ClearMessages)

	uploadHandlers := NewUploadHandlers(cfg.UploadDir, cfg.MaxUploadBytes, logger)
	router.POST("/upload", uploadHandlers.Upload)
	router.Static("/uploads", cfg.UploadDir)

	otpHandlers := NewOTPHandlers(authService, logger)
	router.POST("/api/otp/request", otpHandlers.RequestCode)
	router.POST("/api/otp/verify", otpHandlers.VerifyCode)

	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
