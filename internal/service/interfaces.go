// Package service - бизнес-логика сессий журналинга и генерации досок.
package service

import "context"

// AIClient - граница генерации текста. Результат - недоверенный текст
// без гарантированной структуры; каждый потребитель сам извлекает JSON
// и подставляет свой фолбэк.
type AIClient interface {
	GenerateText(ctx context.Context, systemInstruction, userPrompt string) (string, error)
}

// ImageClient - граница генерации изображений. Возвращает data URL
// либо ошибку; плейсхолдеры не подставляются.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
