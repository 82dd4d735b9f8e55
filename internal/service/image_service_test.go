package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"visionboard-server/internal/models"
	repoMocks "visionboard-server/internal/repository/mocks"
	"visionboard-server/internal/service"
	"visionboard-server/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func boardWithElements(n int) *models.Board {
	board := models.NewBoard(uuid.New(), "Test Board")
	for i := 0; i < n; i++ {
		board.Canvas.Elements = append(board.Canvas.Elements, models.CanvasElement{
			ID:    uuid.New(),
			Type:  "image",
			Layer: i,
			Data: models.ImageData{
				Prompt: "a quiet mountain lake",
				Style:  "landscape",
				Status: models.StatusPending,
			},
		})
	}
	return board
}

func TestEnhancePrompt(t *testing.T) {
	enhanced := service.EnhancePrompt("a quiet lake", "watercolor")
	assert.True(t, strings.HasPrefix(enhanced, "a quiet lake. Style: watercolor painting"))
	assert.Contains(t, enhanced, "NO people, NO faces, NO human figures")

	// Неизвестный стиль трактуется как photography.
	unknown := service.EnhancePrompt("a quiet lake", "steampunk")
	assert.Contains(t, unknown, "professional photography")
}

func TestGenerateElementImage(t *testing.T) {
	ctx := context.Background()

	t.Run("success patches only own element", func(t *testing.T) {
		board := boardWithElements(2)
		target := board.Canvas.Elements[0].ID
		other := board.Canvas.Elements[1].ID

		mockBoards := new(repoMocks.BoardRepository)
		mockTracker := new(repoMocks.GenerationTracker)
		mockImages := new(mocks.MockImageClient)
		svc := service.NewImageService(mockBoards, mockTracker, mockImages, zap.NewNop())

		mockTracker.On("Acquire", ctx, target).Return(true, nil).Once()
		mockTracker.On("Release", mock.Anything, target).Return(nil).Once()
		mockBoards.On("GetByID", ctx, board.ID).Return(board, nil).Twice()
		mockImages.On("GenerateImage", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "a quiet mountain lake")
		})).Return("data:image/png;base64,abc", nil).Once()
		mockBoards.On("Update", ctx, mock.MatchedBy(func(b *models.Board) bool {
			el := b.ElementByID(target)
			otherEl := b.ElementByID(other)
			return el.Data.Status == models.StatusComplete &&
				el.Data.Src == "data:image/png;base64,abc" &&
				otherEl.Data.Status == models.StatusPending
		})).Return(nil).Once()

		result, err := svc.GenerateElementImage(ctx, board.ID, target)
		require.NoError(t, err)
		assert.Equal(t, models.StatusComplete, result.ElementByID(target).Data.Status)
		mockBoards.AssertExpectations(t)
		mockTracker.AssertExpectations(t)
		mockImages.AssertExpectations(t)
	})

	t.Run("duplicate generation is refused", func(t *testing.T) {
		board := boardWithElements(1)
		target := board.Canvas.Elements[0].ID

		mockBoards := new(repoMocks.BoardRepository)
		mockTracker := new(repoMocks.GenerationTracker)
		mockImages := new(mocks.MockImageClient)
		svc := service.NewImageService(mockBoards, mockTracker, mockImages, zap.NewNop())

		mockTracker.On("Acquire", ctx, target).Return(false, nil).Once()

		_, err := svc.GenerateElementImage(ctx, board.ID, target)
		assert.True(t, errors.Is(err, models.ErrElementGenerating))
		mockBoards.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		mockImages.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
	})

	t.Run("generation failure leaves element pending and releases lock", func(t *testing.T) {
		board := boardWithElements(1)
		target := board.Canvas.Elements[0].ID

		mockBoards := new(repoMocks.BoardRepository)
		mockTracker := new(repoMocks.GenerationTracker)
		mockImages := new(mocks.MockImageClient)
		svc := service.NewImageService(mockBoards, mockTracker, mockImages, zap.NewNop())

		mockTracker.On("Acquire", ctx, target).Return(true, nil).Once()
		mockTracker.On("Release", mock.Anything, target).Return(nil).Once()
		mockBoards.On("GetByID", ctx, board.ID).Return(board, nil).Once()
		mockImages.On("GenerateImage", mock.Anything, mock.Anything).Return("", errors.New("content policy")).Once()

		_, err := svc.GenerateElementImage(ctx, board.ID, target)
		assert.True(t, errors.Is(err, models.ErrImageGenerationFailed))
		// Доска не перезаписывается, элемент остается pending.
		mockBoards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Equal(t, models.StatusPending, board.ElementByID(target).Data.Status)
		mockTracker.AssertExpectations(t)
	})

	t.Run("unknown element", func(t *testing.T) {
		board := boardWithElements(1)
		stranger := uuid.New()

		mockBoards := new(repoMocks.BoardRepository)
		mockTracker := new(repoMocks.GenerationTracker)
		mockImages := new(mocks.MockImageClient)
		svc := service.NewImageService(mockBoards, mockTracker, mockImages, zap.NewNop())

		mockTracker.On("Acquire", ctx, stranger).Return(true, nil).Once()
		mockTracker.On("Release", mock.Anything, stranger).Return(nil).Once()
		mockBoards.On("GetByID", ctx, board.ID).Return(board, nil).Once()

		_, err := svc.GenerateElementImage(ctx, board.ID, stranger)
		assert.True(t, errors.Is(err, models.ErrElementNotFound))
	})
}

func TestRegenerateElementImage(t *testing.T) {
	ctx := context.Background()

	board := boardWithElements(1)
	target := board.Canvas.Elements[0].ID
	board.Canvas.Elements[0].Data.Src = "data:image/png;base64,old"
	board.Canvas.Elements[0].Data.Status = models.StatusComplete

	mockBoards := new(repoMocks.BoardRepository)
	mockTracker := new(repoMocks.GenerationTracker)
	mockImages := new(mocks.MockImageClient)
	svc := service.NewImageService(mockBoards, mockTracker, mockImages, zap.NewNop())

	mockBoards.On("GetByID", ctx, board.ID).Return(board, nil)
	// Сброс в pending персистится до запуска генерации.
	mockBoards.On("Update", ctx, mock.MatchedBy(func(b *models.Board) bool {
		el := b.ElementByID(target)
		return el.Data.Status == models.StatusPending && el.Data.Src == ""
	})).Return(nil).Once()
	mockTracker.On("Acquire", ctx, target).Return(true, nil).Once()
	mockTracker.On("Release", mock.Anything, target).Return(nil).Once()
	mockImages.On("GenerateImage", mock.Anything, mock.Anything).Return("data:image/png;base64,new", nil).Once()
	mockBoards.On("Update", ctx, mock.MatchedBy(func(b *models.Board) bool {
		return b.ElementByID(target).Data.Src == "data:image/png;base64,new"
	})).Return(nil).Once()

	result, err := svc.RegenerateElementImage(ctx, board.ID, target)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, result.ElementByID(target).Data.Status)
	mockImages.AssertExpectations(t)
}
