package handler

import "visionboard-server/internal/models"

type createJournalRequest struct {
	Title string `json:"title"`
}

type startSessionRequest struct {
	EditMode bool `json:"editMode"`
}

type saveResponseRequest struct {
	PromptID  string `json:"promptId" binding:"required"`
	Answer    string `json:"answer"`
	Direction string `json:"direction"`
}

type createBoardRequest struct {
	Title string `json:"title"`
}

type updateCanvasRequest struct {
	Canvas models.CanvasState `json:"canvas" binding:"required"`
}

type snapshotRequest struct {
	Description string `json:"description"`
}

type elementRequest struct {
	Element models.CanvasElement `json:"element" binding:"required"`
}
