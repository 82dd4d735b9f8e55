package service

import (
	"context"
	"fmt"

	"visionboard-server/internal/models"
	"visionboard-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// styleEnhancers - суффиксы промпта для каждого визуального стиля.
var styleEnhancers = map[string]string{
	"photography":   "professional photography, shallow depth of field, soft natural lighting, high quality DSLR",
	"watercolor":    "watercolor painting, soft washes, delicate brushstrokes, artistic, flowing colors, paper texture",
	"abstract":      "abstract art, bold shapes, modern art, conceptual, expressive, non-representational",
	"oilpainting":   "oil painting, rich textures, classical art style, visible brushstrokes, museum quality",
	"minimalist":    "minimalist, clean lines, simple composition, lots of negative space, zen aesthetic",
	"impressionist": "impressionist painting style, soft focus, dappled light, Monet-inspired, dreamy",
	"cinematic":     "cinematic shot, dramatic lighting, film grain, movie still, widescreen composition",
	"macro":         "macro photography, extreme close-up, intricate details, shallow depth of field, high magnification",
	"landscape":     "epic landscape photography, golden hour, panoramic, majestic, national geographic style",
	"symbolic":      "symbolic imagery, metaphorical, meaningful objects, artistic composition, thoughtful",
	"dreamy":        "dreamy aesthetic, soft focus, ethereal glow, pastel tones, magical atmosphere",
	"vintage":       "vintage photography, film grain, muted colors, nostalgic, retro aesthetic",
}

// ImageService рендерит изображения элементов доски.
// Каждый элемент обрабатывается независимо: генерации могут идти параллельно,
// а результат патчит в доске только собственный элемент, перечитывая документ
// перед записью, чтобы не затереть чужие завершенные генерации.
type ImageService struct {
	boards  repository.BoardRepository
	tracker repository.GenerationTracker
	images  ImageClient
	logger  *zap.Logger
}

// NewImageService создает ImageService.
func NewImageService(boards repository.BoardRepository, tracker repository.GenerationTracker, images ImageClient, logger *zap.Logger) *ImageService {
	return &ImageService{
		boards:  boards,
		tracker: tracker,
		images:  images,
		logger:  logger.Named("ImageService"),
	}
}

// EnhancePrompt собирает финальный промпт изображения из промпта темы и
// стилевого суффикса. Неизвестный стиль трактуется как photography.
func EnhancePrompt(prompt, style string) string {
	enhancer, ok := styleEnhancers[style]
	if !ok {
		enhancer = styleEnhancers["photography"]
	}
	return fmt.Sprintf("%s. Style: %s. Important: NO people, NO faces, NO human figures. Focus on scenes, objects, nature, and atmosphere.", prompt, enhancer)
}

// GenerateElementImage генерирует изображение для одного элемента доски.
// Повторный запрос на элемент, генерация которого уже идет, возвращает
// ErrElementGenerating. При сбое генерации элемент остается в pending.
func (s *ImageService) GenerateElementImage(ctx context.Context, boardID, elementID uuid.UUID) (*models.Board, error) {
	acquired, err := s.tracker.Acquire(ctx, elementID)
	if err != nil {
		return nil, fmt.Errorf("ошибка захвата блокировки элемента: %w", err)
	}
	if !acquired {
		return nil, models.ErrElementGenerating
	}
	defer func() {
		if releaseErr := s.tracker.Release(context.WithoutCancel(ctx), elementID); releaseErr != nil {
			s.logger.Warn("Failed to release element lock", zap.Error(releaseErr))
		}
	}()

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	element := board.ElementByID(elementID)
	if element == nil {
		return nil, models.ErrElementNotFound
	}

	enhanced := EnhancePrompt(element.Data.Prompt, element.Data.Style)
	s.logger.Info("Generating element image",
		zap.String("boardID", boardID.String()),
		zap.String("elementID", elementID.String()),
		zap.String("style", element.Data.Style),
	)

	dataURL, err := s.images.GenerateImage(ctx, enhanced)
	if err != nil {
		s.logger.Error("Element image generation failed",
			zap.String("elementID", elementID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", models.ErrImageGenerationFailed, err)
	}

	// Перечитываем документ: за время генерации параллельные элементы
	// могли уже записать свои результаты.
	board, err = s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	element = board.ElementByID(elementID)
	if element == nil {
		return nil, models.ErrElementNotFound
	}
	element.Data.Src = dataURL
	element.Data.Status = models.StatusComplete

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	return board, nil
}

// RegenerateElementImage сбрасывает элемент в pending и запускает генерацию
// заново.
func (s *ImageService) RegenerateElementImage(ctx context.Context, boardID, elementID uuid.UUID) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	element := board.ElementByID(elementID)
	if element == nil {
		return nil, models.ErrElementNotFound
	}

	element.Data.Src = ""
	element.Data.Status = models.StatusPending
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}

	return s.GenerateElementImage(ctx, boardID, elementID)
}
