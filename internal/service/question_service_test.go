package service_test

import (
	"context"
	"errors"
	"testing"

	"visionboard-server/internal/models"
	"visionboard-server/internal/service"
	"visionboard-server/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateBatch(t *testing.T) {
	ctx := context.Background()
	history := []models.ConversationEntry{
		{Question: "How do you feel?", Answer: "Hopeful", Category: models.CategoryYear},
	}

	t.Run("well-formed response yields exactly batchSize prompts", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{
			"questions": [
				{"question": "Q1", "subtext": "s1", "category": "values", "psychologyTechnique": "t1"},
				{"question": "Q2", "subtext": "", "category": "identity"},
				{"question": "Q3", "category": "obstacles"},
				{"question": "Q4", "category": "closing"}
			]
		}`, nil).Once()

		batch, err := svc.GenerateBatch(ctx, history, 1, 4)
		require.NoError(t, err)
		require.Len(t, batch, 4)
		assert.Equal(t, "Q1", batch[0].Question)
		assert.Equal(t, models.CategoryValues, batch[0].Category)
		assert.True(t, batch[0].IsDynamic)
		assert.NotEqual(t, batch[0].ID, batch[1].ID)
		mockAI.AssertExpectations(t)
	})

	t.Run("oversized response is truncated", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{
			"questions": [
				{"question": "Q1"}, {"question": "Q2"}, {"question": "Q3"},
				{"question": "Q4"}, {"question": "Q5"}, {"question": "Q6"}
			]
		}`, nil).Once()

		batch, err := svc.GenerateBatch(ctx, history, 1, 4)
		require.NoError(t, err)
		assert.Len(t, batch, 4)
	})

	t.Run("undersized response is padded from fallback", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{
			"questions": [{"question": "Only one"}]
		}`, nil).Once()

		batch, err := svc.GenerateBatch(ctx, history, 1, 4)
		require.NoError(t, err)
		require.Len(t, batch, 4)
		assert.Equal(t, "Only one", batch[0].Question)
		for _, p := range batch[1:] {
			assert.NotEmpty(t, p.Question)
		}
	})

	t.Run("garbage response falls back entirely", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("not json at all, sorry", nil).Once()

		batch, err := svc.GenerateBatch(ctx, history, 2, 4)
		require.NoError(t, err)
		require.Len(t, batch, 4)
		// Второй фолбэк-батч начинается с вопроса про препятствия.
		assert.Equal(t, "When that obstacle shows up, what will you do instead?", batch[0].Question)
	})

	t.Run("blank questions are dropped before padding", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{
			"questions": [{"question": "   "}, {"question": "Real"}]
		}`, nil).Once()

		batch, err := svc.GenerateBatch(ctx, history, 1, 4)
		require.NoError(t, err)
		require.Len(t, batch, 4)
		assert.Equal(t, "Real", batch[0].Question)
	})

	t.Run("transport failure surfaces as generation error", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		svc := service.NewQuestionService(mockAI, zap.NewNop())

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("", errors.New("connection refused")).Once()

		batch, err := svc.GenerateBatch(ctx, history, 1, 4)
		assert.Nil(t, batch)
		assert.True(t, errors.Is(err, models.ErrQuestionGenerationFailed))
	})
}
