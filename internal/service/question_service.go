package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"visionboard-server/internal/models"
	"visionboard-server/internal/prompts"
	"visionboard-server/pkg/ai"

	"go.uber.org/zap"
)

// QuestionService генерирует батчи динамических вопросов, заземленных
// в предыдущих ответах пользователя.
type QuestionService struct {
	aiClient AIClient
	logger   *zap.Logger
}

// NewQuestionService создает QuestionService.
func NewQuestionService(aiClient AIClient, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		aiClient: aiClient,
		logger:   logger.Named("QuestionService"),
	}
}

// generatedQuestion - ожидаемая форма одного вопроса в ответе модели.
type generatedQuestion struct {
	Question            string `json:"question"`
	Subtext             string `json:"subtext"`
	Category            string `json:"category"`
	PsychologyTechnique string `json:"psychologyTechnique"`
}

type generatedQuestionsPayload struct {
	Questions []generatedQuestion `json:"questions"`
}

// GenerateBatch запрашивает ровно batchSize новых вопросов.
// Мусорный ответ модели подменяется фиксированным фолбэк-батчем;
// недобор добирается циклом по фолбэку, избыток отсекается.
// Ошибка возвращается только при сбое самого вызова - в этом случае
// автомат фазы откатывается в transition без добавления вопросов.
func (s *QuestionService) GenerateBatch(ctx context.Context, history []models.ConversationEntry, batchNumber, batchSize int) ([]models.Prompt, error) {
	log := s.logger.With(zap.Int("batchNumber", batchNumber), zap.Int("batchSize", batchSize))

	systemInstruction := buildQuestionSystemPrompt(history, batchNumber, batchSize)
	userPrompt := fmt.Sprintf(
		"Based on their reflections so far, generate %d perfect follow-up questions that will deepen their vision for 2026.",
		batchSize,
	)

	text, err := s.aiClient.GenerateText(ctx, systemInstruction, userPrompt)
	if err != nil {
		log.Warn("Question generation call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrQuestionGenerationFailed, err)
	}

	questions := parseGeneratedQuestions(text)
	if len(questions) == 0 {
		log.Warn("AI response contained no usable questions, using fallback batch")
	}

	// Пост-условие: ровно batchSize вопросов.
	fallback := prompts.FallbackBatch(batchNumber, batchSize)
	for len(questions) < batchSize {
		fb := fallback[len(questions)%len(fallback)]
		questions = append(questions, generatedQuestion{
			Question:            fb.Question,
			Subtext:             fb.Subtext,
			Category:            string(fb.Category),
			PsychologyTechnique: fb.PsychologyTechnique,
		})
	}
	questions = questions[:batchSize]

	batch := make([]models.Prompt, 0, batchSize)
	for _, q := range questions {
		batch = append(batch, prompts.NewDynamicPrompt(
			q.Question,
			q.Subtext,
			models.PromptCategory(q.Category),
			q.PsychologyTechnique,
		))
	}

	log.Info("Dynamic question batch ready", zap.Int("count", len(batch)))
	return batch, nil
}

// parseGeneratedQuestions извлекает массив questions из сырого ответа
// модели. Любая ошибка парсинга дает пустой результат.
func parseGeneratedQuestions(text string) []generatedQuestion {
	raw, err := ai.ExtractFirstJSONObject(text)
	if err != nil {
		return nil
	}
	var payload generatedQuestionsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	questions := make([]generatedQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

func buildQuestionSystemPrompt(history []models.ConversationEntry, batchNumber, batchSize int) string {
	var contextBuilder strings.Builder
	for i, entry := range history {
		if i > 0 {
			contextBuilder.WriteString("\n\n")
		}
		fmt.Fprintf(&contextBuilder, "Q%d: %s\nA%d: %s", i+1, entry.Question, i+1, entry.Answer)
	}
	conversationContext := contextBuilder.String()
	if conversationContext == "" {
		conversationContext = "This is the beginning of the conversation."
	}

	var batchFocus string
	switch {
	case batchNumber <= 1:
		batchFocus = `- VALUES: What matters most? What won't they compromise on?
- LIFE AREAS: Specific aspects of career, health, relationships, creativity, joy
- OBSTACLES: Inner blocks, fears, patterns to break
- IDENTITY: Deeper exploration of who they're becoming`
	case batchNumber == 2:
		batchFocus = `- OBSTACLES: What gets in their way? What patterns need to change?
- RELATIONSHIPS: How do connections with others fit into their vision?
- DAILY LIFE: What would their ideal day look like?
- RESILIENCE: What will keep them going when things get hard?`
	default:
		batchFocus = `- CLOSING: Small actionable steps they can take
- COMMITMENT: What they're willing to do differently
- REMINDER: What they want to remember
- GRATITUDE: What they already have that supports their vision`
	}

	totalQuestions := len(history)
	return fmt.Sprintf(`You are a thoughtful, empathetic guide helping someone create their vision for 2026. Generate a batch of %d deeply personal questions that will help them clarify their dreams, values, and intentions.

CONVERSATION SO FAR:
%s

BATCH NUMBER: %d (generating questions %d to %d)

YOUR TASK: Generate exactly %d questions that form a cohesive set, building on what they've shared.

GUIDELINES FOR THE BATCH:
1. Each question should build on previous answers - reference their specific words and themes
2. The batch should feel like a natural progression, not random questions
3. Mix exploration (going deeper into themes) with discovery (finding new aspects)
4. Include at least one question about potential obstacles or challenges
5. Include at least one actionable/forward-looking question

QUESTION TYPES TO INCLUDE IN THIS BATCH:
%s

PSYCHOLOGY TECHNIQUES TO WEAVE IN:
- Future self visualization
- Mental contrasting (pair dreams with realistic obstacles)
- Implementation intentions (if-then planning)
- Identity-based goals (who they're becoming)
- Self-compassion (gentle, non-judgmental framing)

RESPOND WITH JSON:
{
  "questions": [
    {
      "question": "Your thoughtful question",
      "subtext": "Brief context (1 sentence, can be empty)",
      "category": "values | identity | life-areas | obstacles | closing",
      "psychologyTechnique": "optional technique name"
    }
  ]
}

Make each question feel connected to the previous one, creating a natural flow. Questions should be warm and conversational, not clinical.`,
		batchSize, conversationContext, batchNumber, totalQuestions+1, totalQuestions+batchSize, batchSize, batchFocus)
}
