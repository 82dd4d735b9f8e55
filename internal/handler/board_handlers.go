package handler

import (
	"net/http"

	"visionboard-server/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createBoard(c *gin.Context) {
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "My Vision Board"
	}

	board, err := h.boards.CreateBlankBoard(c.Request.Context(), req.Title)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *Handler) listBoards(c *gin.Context) {
	boards, err := h.boards.ListBoards(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (h *Handler) getBoard(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	board, err := h.boards.GetBoard(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) updateCanvas(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req updateCanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	board, err := h.boards.UpdateCanvas(c.Request.Context(), id, req.Canvas)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) snapshotBoard(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	board, err := h.boards.Snapshot(c.Request.Context(), id, req.Description)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *Handler) addElement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req elementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	board, err := h.boards.AddElement(c.Request.Context(), id, req.Element)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *Handler) updateElement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	elementID, ok := parseUUIDParam(c, "elementId")
	if !ok {
		return
	}
	var req elementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}
	req.Element.ID = elementID

	board, err := h.boards.UpdateElement(c.Request.Context(), id, req.Element)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) deleteElement(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	elementID, ok := parseUUIDParam(c, "elementId")
	if !ok {
		return
	}

	board, err := h.boards.DeleteElement(c.Request.Context(), id, elementID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) generateElementImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	elementID, ok := parseUUIDParam(c, "elementId")
	if !ok {
		return
	}

	board, err := h.images.GenerateElementImage(c.Request.Context(), id, elementID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *Handler) regenerateElementImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	elementID, ok := parseUUIDParam(c, "elementId")
	if !ok {
		return
	}

	board, err := h.images.RegenerateElementImage(c.Request.Context(), id, elementID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
