package service

import (
	"context"
	"fmt"

	"visionboard-server/internal/models"
	"visionboard-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoardService - операции над досками и их элементами.
// Запись доски целиком перезатирает документ: при конкурентных правках
// побеждает последняя.
type BoardService struct {
	boards repository.BoardRepository
	logger *zap.Logger
}

// NewBoardService создает BoardService.
func NewBoardService(boards repository.BoardRepository, logger *zap.Logger) *BoardService {
	return &BoardService{
		boards: boards,
		logger: logger.Named("BoardService"),
	}
}

// CreateBlankBoard создает пустую доску без привязки к журналу.
func (s *BoardService) CreateBlankBoard(ctx context.Context, title string) (*models.Board, error) {
	board := models.NewBoard(uuid.Nil, title)
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка создания доски: %w", err)
	}
	s.logger.Info("Blank board created", zap.String("boardID", board.ID.String()))
	return board, nil
}

// GetBoard возвращает доску по id.
func (s *BoardService) GetBoard(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	return s.boards.GetByID(ctx, id)
}

// ListBoards возвращает все доски.
func (s *BoardService) ListBoards(ctx context.Context) ([]models.Board, error) {
	return s.boards.List(ctx)
}

// AddElement добавляет элемент на холст. Layer выставляется поверх
// существующих элементов.
func (s *BoardService) AddElement(ctx context.Context, boardID uuid.UUID, element models.CanvasElement) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if element.ID == uuid.Nil {
		element.ID = uuid.New()
	}
	element.Layer = len(board.Canvas.Elements)
	board.Canvas.Elements = append(board.Canvas.Elements, element)

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	return board, nil
}

// UpdateElement заменяет элемент холста по id.
func (s *BoardService) UpdateElement(ctx context.Context, boardID uuid.UUID, element models.CanvasElement) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	existing := board.ElementByID(element.ID)
	if existing == nil {
		return nil, models.ErrElementNotFound
	}
	*existing = element

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	return board, nil
}

// DeleteElement удаляет элемент холста по id.
func (s *BoardService) DeleteElement(ctx context.Context, boardID, elementID uuid.UUID) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	elements := board.Canvas.Elements
	idx := -1
	for i := range elements {
		if elements[i].ID == elementID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.ErrElementNotFound
	}
	board.Canvas.Elements = append(elements[:idx], elements[idx+1:]...)

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	return board, nil
}

// UpdateCanvas заменяет состояние холста целиком (фон, viewport, элементы).
func (s *BoardService) UpdateCanvas(ctx context.Context, boardID uuid.UUID, canvas models.CanvasState) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	board.Canvas = canvas
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	return board, nil
}

// Snapshot фиксирует текущее состояние холста в истории версий.
func (s *BoardService) Snapshot(ctx context.Context, boardID uuid.UUID, description string) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if err := board.AddVersion(description); err != nil {
		return nil, fmt.Errorf("ошибка снимка холста: %w", err)
	}
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	s.logger.Info("Board version saved",
		zap.String("boardID", board.ID.String()),
		zap.Int("versions", len(board.Versions)),
	)
	return board, nil
}
