// Package prompts содержит статический каталог предписанных вопросов
// и чистые хелперы прогресса/завершенности фазы.
package prompts

import (
	"fmt"
	"strings"

	"visionboard-server/internal/models"

	"github.com/google/uuid"
)

// QuestionBatchSize - размер батча динамически генерируемых вопросов.
const QuestionBatchSize = 4

// Prescribed - предписанные вопросы, всегда задаются первыми в фиксированном
// порядке. Первый промпт - интерлюдия без ответа.
var Prescribed = []models.Prompt{
	{
		ID:          "welcome-breath",
		Category:    models.CategoryWelcome,
		Question:    "Take a deep breath. Close your eyes for a moment.",
		Subtext:     "When you're ready, let's begin this journey together. There are no wrong answers — only your truth.",
		Placeholder: "Press continue when you're centered...",
		IsInterlude: true,
	},
	{
		ID:                  "year-feeling",
		Category:            models.CategoryYear,
		Question:            "Imagine it's December 31st, 2026. You're looking back on an incredible year. How do you feel?",
		Subtext:             "Don't think too hard — what's the first feeling that comes to mind?",
		Placeholder:         "I feel...",
		PsychologyTechnique: "Future self visualization",
	},
	{
		ID:                  "year-word",
		Category:            models.CategoryYear,
		Question:            "If you had to capture your vision for 2026 in a single word or phrase, what would it be?",
		Subtext:             "This word will anchor your vision board.",
		Placeholder:         "My word for 2026 is...",
		PsychologyTechnique: "Intention setting",
	},
	{
		ID:                  "core-transformation",
		Category:            models.CategoryLifeAreas,
		Question:            "What's the one area of your life you most want to transform this year?",
		Subtext:             "It could be career, health, relationships, creativity, finances, personal growth — whatever calls to you strongest.",
		Placeholder:         "The area I most want to transform is...",
		PsychologyTechnique: "Goal clarity",
	},
	{
		ID:                  "identity-becoming",
		Category:            models.CategoryIdentity,
		Question:            "Who are you becoming?",
		Subtext:             "Not who you think you should be, but who you genuinely want to grow into.",
		Placeholder:         "I am becoming someone who...",
		PsychologyTechnique: "Identity-based goals",
	},
}

// Categories - порядок объявления фаз; используется при группировке
// ответов в контекст для компиляции профиля.
var Categories = []models.PromptCategory{
	models.CategoryWelcome,
	models.CategoryYear,
	models.CategoryValues,
	models.CategoryIdentity,
	models.CategoryLifeAreas,
	models.CategoryObstacles,
	models.CategoryClosing,
	models.CategoryDynamic,
}

// GetPromptByID ищет промпт в списке по id.
func GetPromptByID(list []models.Prompt, id string) (models.Prompt, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return models.Prompt{}, false
}

// Progress возвращает прогресс по списку вопросов в процентах.
func Progress(currentIndex, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return float64(currentIndex+1) / float64(totalQuestions) * 100
}

// AnsweredCount считает непустые ответы, исключая интерлюдии.
func AnsweredCount(list []models.Prompt, responses []models.JournalResponse) int {
	count := 0
	for _, r := range responses {
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		if p, ok := GetPromptByID(list, r.PromptID); ok && p.IsInterlude {
			continue
		}
		count++
	}
	return count
}

// IsPrescribedPhaseComplete проверяет, что каждый предписанный промпт,
// кроме интерлюдий, имеет непустой (после trim) ответ.
func IsPrescribedPhaseComplete(responses []models.JournalResponse) bool {
	for _, p := range Prescribed {
		if p.IsInterlude {
			continue
		}
		answered := false
		for _, r := range responses {
			if r.PromptID == p.ID && strings.TrimSpace(r.Answer) != "" {
				answered = true
				break
			}
		}
		if !answered {
			return false
		}
	}
	return true
}

// NewDynamicPrompt материализует сгенерированный вопрос как промпт
// с новым уникальным id. Дубликаты по содержанию не отсеиваются.
func NewDynamicPrompt(question, subtext string, category models.PromptCategory, technique string) models.Prompt {
	if category == "" {
		category = models.CategoryDynamic
	}
	return models.Prompt{
		ID:                  fmt.Sprintf("dynamic-%s", uuid.NewString()),
		Category:            category,
		Question:            question,
		Subtext:             subtext,
		Placeholder:         "Share your thoughts...",
		PsychologyTechnique: technique,
		IsDynamic:           true,
	}
}
