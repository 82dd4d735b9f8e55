package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAIClient - мок текстового клиента модели.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateText(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	args := m.Called(ctx, systemInstruction, userPrompt)
	return args.String(0), args.Error(1)
}

// MockImageClient - мок клиента генерации изображений.
type MockImageClient struct {
	mock.Mock
}

func (m *MockImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
