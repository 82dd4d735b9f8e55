package prompts

import "visionboard-server/internal/models"

// FallbackQuestion - заготовленный вопрос на случай сбоя или мусорного
// ответа генератора.
type FallbackQuestion struct {
	Question            string
	Subtext             string
	Category            models.PromptCategory
	PsychologyTechnique string
}

// fallbackBatches - фиксированные батчи по номеру батча (1, 2, 3+).
// Для больших номеров используется последний батч.
var fallbackBatches = [][]FallbackQuestion{
	{
		{
			Question:            "When you're at your best, what values are you living by?",
			Subtext:             "Think of a moment when you felt truly aligned with yourself.",
			Category:            models.CategoryValues,
			PsychologyTechnique: "Self-determination",
		},
		{
			Question:            "What brings you pure, uncomplicated joy?",
			Subtext:             "The small things, the big things — what makes you come alive?",
			Category:            models.CategoryLifeAreas,
			PsychologyTechnique: "Positive psychology",
		},
		{
			Question:            "What's the inner obstacle that usually holds you back?",
			Subtext:             "Fear, perfectionism, self-doubt — name it without judgment.",
			Category:            models.CategoryObstacles,
			PsychologyTechnique: "Mental contrasting",
		},
		{
			Question:            "If nothing could stop you, what would you create or achieve this year?",
			Subtext:             "Dream boldly for a moment.",
			Category:            models.CategoryIdentity,
			PsychologyTechnique: "Future self visualization",
		},
	},
	{
		{
			Question:            "When that obstacle shows up, what will you do instead?",
			Subtext:             "Create an 'if-then' plan for when things get hard.",
			Category:            models.CategoryObstacles,
			PsychologyTechnique: "Implementation intentions",
		},
		{
			Question:            "Who are the people that support your growth?",
			Subtext:             "Think about who you want to spend more time with this year.",
			Category:            models.CategoryLifeAreas,
			PsychologyTechnique: "Social support",
		},
		{
			Question:            "What does your ideal morning look like in 2026?",
			Subtext:             "Paint a vivid picture of how your day begins.",
			Category:            models.CategoryIdentity,
			PsychologyTechnique: "Future self visualization",
		},
		{
			Question:            "What will keep you going when motivation fades?",
			Subtext:             "Think about your deeper 'why'.",
			Category:            models.CategoryValues,
			PsychologyTechnique: "Intrinsic motivation",
		},
	},
	{
		{
			Question:            "What's the smallest action you could take this week toward your vision?",
			Subtext:             "Not the big goal — the tiniest step you could actually do tomorrow.",
			Category:            models.CategoryClosing,
			PsychologyTechnique: "Minimum viable action",
		},
		{
			Question:            "What do you want to remember when things get hard?",
			Subtext:             "A mantra, a truth, a reason to keep going.",
			Category:            models.CategoryClosing,
			PsychologyTechnique: "Self-compassion anchor",
		},
		{
			Question:            "What are you already grateful for that supports this vision?",
			Subtext:             "Sometimes what we need is already present in our lives.",
			Category:            models.CategoryValues,
			PsychologyTechnique: "Gratitude practice",
		},
		{
			Question:            "What are you ready to let go of to make room for growth?",
			Subtext:             "Sometimes progress requires releasing something first.",
			Category:            models.CategoryObstacles,
			PsychologyTechnique: "Mental contrasting",
		},
	},
}

// FallbackBatch возвращает заготовленный батч для номера батча,
// циклически добирая вопросы до нужного количества.
func FallbackBatch(batchNumber, count int) []FallbackQuestion {
	if batchNumber < 1 {
		batchNumber = 1
	}
	idx := batchNumber - 1
	if idx >= len(fallbackBatches) {
		idx = len(fallbackBatches) - 1
	}
	source := fallbackBatches[idx]
	batch := make([]FallbackQuestion, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, source[i%len(source)])
	}
	return batch
}
