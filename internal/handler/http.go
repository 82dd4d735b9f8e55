// Package handler содержит HTTP-обработчики Gin для журналов и досок.
package handler

import (
	"errors"
	"net/http"

	"visionboard-server/internal/models"
	"visionboard-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler агрегирует сервисы приложения для HTTP-слоя.
type Handler struct {
	sessions *service.SessionService
	boards   *service.BoardService
	images   *service.ImageService
	logger   *zap.Logger
}

// NewHandler создает Handler.
func NewHandler(sessions *service.SessionService, boards *service.BoardService, images *service.ImageService, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		boards:   boards,
		images:   images,
		logger:   logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты API.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		journals := api.Group("/journals")
		{
			journals.POST("", h.createJournal)
			journals.GET("", h.listJournals)
			journals.GET("/:id", h.getJournal)
			journals.POST("/:id/session", h.startSession)
			journals.GET("/:id/session", h.getSession)
			journals.PUT("/:id/responses", h.saveResponse)
			journals.POST("/:id/questions", h.generateQuestions)
			journals.POST("/:id/profile", h.compileProfile)
			journals.POST("/:id/complete", h.completeJournal)
		}

		boards := api.Group("/boards")
		{
			boards.POST("", h.createBoard)
			boards.GET("", h.listBoards)
			boards.GET("/:id", h.getBoard)
			boards.PUT("/:id/canvas", h.updateCanvas)
			boards.POST("/:id/versions", h.snapshotBoard)
			boards.POST("/:id/elements", h.addElement)
			boards.PUT("/:id/elements/:elementId", h.updateElement)
			boards.DELETE("/:id/elements/:elementId", h.deleteElement)
			boards.POST("/:id/elements/:elementId/generate", h.generateElementImage)
			boards.POST("/:id/elements/:elementId/regenerate", h.regenerateElementImage)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrJournalNotFound),
		errors.Is(err, models.ErrBoardNotFound),
		errors.Is(err, models.ErrElementNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, models.ErrSessionNotFound):
		statusCode = http.StatusNotFound
		message = "No active session for this journal, start one first"
	case errors.Is(err, models.ErrInvalidTransition):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, models.ErrElementGenerating):
		statusCode = http.StatusConflict
		message = "Image generation for this element is already in progress"
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrBoardGenerationFailed),
		errors.Is(err, models.ErrImageGenerationFailed),
		errors.Is(err, models.ErrQuestionGenerationFailed):
		statusCode = http.StatusBadGateway
		message = err.Error()
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal error occurred"
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message})
}
