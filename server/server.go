package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/db"
)

// Dispatcher routes a decoded Telegram update to the dialogue handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, update tgbotapi.Update)
}

// WebhookManager manages the bot's webhook registration.
type WebhookManager interface {
	SetWebhook(url string) error
	WebhookInfo() (tgbotapi.WebhookInfo, error)
}

// Server is the HTTP surface: the Telegram webhook plus the posts API.
type Server struct {
	store      *db.Store
	dispatcher Dispatcher
	webhooks   WebhookManager
	engine     *gin.Engine
}

// New builds the server and its routes.
func New(store *db.Store, dispatcher Dispatcher, webhooks WebhookManager) *Server {
	s := &Server{
		store:      store,
		dispatcher: dispatcher,
		webhooks:   webhooks,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	api := engine.Group("/api")
	{
		telegram := api.Group("/telegram")
		telegram.POST("/webhook", s.telegramWebhook)
		telegram.POST("/set-webhook", s.setTelegramWebhook)
		telegram.GET("/webhook-info", s.telegramWebhookInfo)

		posts := api.Group("/posts")
		posts.POST("", s.createPost)
		posts.GET("", s.listPosts)
		posts.GET("/:id", s.getPost)
		posts.PUT("/:id", s.updatePost)
		posts.POST("/:id/publish", s.publishPost)
		posts.DELETE("/:id", s.deletePost)
	}

	s.engine = engine
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}

// telegramWebhook receives Telegram updates. A malformed body is logged
// and acknowledged as a failure; it never takes down the handler for
// subsequent updates.
func (s *Server) telegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Error().Err(err).Msg("malformed webhook payload")
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Failed to process update"})
		return
	}

	s.dispatcher.Dispatch(c.Request.Context(), update)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type setWebhookRequest struct {
	WebhookURL string `json:"webhook_url" binding:"required,url"`
}

func (s *Server) setTelegramWebhook(c *gin.Context) {
	var req setWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "webhook_url must be a valid URL"})
		return
	}

	if err := s.webhooks.SetWebhook(req.WebhookURL); err != nil {
		log.Error().Err(err).Msg("error setting webhook")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to set webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook set successfully"})
}

func (s *Server) telegramWebhookInfo(c *gin.Context) {
	info, err := s.webhooks.WebhookInfo()
	if err != nil {
		log.Error().Err(err).Msg("error getting webhook info")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to get webhook info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": info})
}
