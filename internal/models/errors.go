package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound        = errors.New("resource not found")
	ErrJournalNotFound = errors.New("journal not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrElementNotFound = errors.New("board element not found")

	// Flow Errors
	ErrInvalidTransition = errors.New("invalid flow transition")
	ErrSessionNotFound   = errors.New("journal session not found")

	// Generation Errors
	ErrQuestionGenerationFailed = errors.New("question generation failed")
	ErrBoardGenerationFailed    = errors.New("board generation failed")
	ErrImageGenerationFailed    = errors.New("image generation failed")
	ErrElementGenerating        = errors.New("element image generation already in progress")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
