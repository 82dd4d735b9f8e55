package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"visionboard-server/internal/models"
	"visionboard-server/internal/prompts"
	"visionboard-server/pkg/ai"

	"go.uber.org/zap"
)

// maxFieldChars - лимит длины текста, переносимого в профиль дословно
// эвристическим фолбэком.
const maxFieldChars = 200

// ProfileService компилирует ответы журнала в структурированный профиль.
// Компиляция никогда не проваливается: сбой вызова или мусорный JSON
// подменяются детерминированным эвристическим профилем, а валидация
// гарантирует полноту всех полей схемы.
type ProfileService struct {
	aiClient AIClient
	logger   *zap.Logger
}

// NewProfileService создает ProfileService.
func NewProfileService(aiClient AIClient, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		aiClient: aiClient,
		logger:   logger.Named("ProfileService"),
	}
}

// CompileProfile синтезирует профиль из всех ответов беседы.
func (s *ProfileService) CompileProfile(ctx context.Context, responses []models.JournalResponse) *models.UserProfile {
	systemInstruction := buildProfileSystemPrompt(responses)

	profile := &models.UserProfile{}
	text, err := s.aiClient.GenerateText(ctx, systemInstruction,
		"Analyze the journal responses and create a comprehensive user profile for vision board generation.")
	if err != nil {
		s.logger.Warn("Profile compilation call failed, building heuristic profile", zap.Error(err))
		profile = heuristicProfile(responses)
	} else if parsed, parseErr := parseProfile(text); parseErr != nil {
		s.logger.Warn("Profile response unparsable, building heuristic profile", zap.Error(parseErr))
		profile = heuristicProfile(responses)
	} else {
		profile = parsed
	}

	profile.Validate()
	s.logger.Info("Profile compiled",
		zap.String("yearWord", profile.YearWord),
		zap.Int("keyThemes", len(profile.KeyThemes)),
	)
	return profile
}

func parseProfile(text string) (*models.UserProfile, error) {
	raw, err := ai.ExtractFirstJSONObject(text)
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("profile JSON does not match schema: %w", err)
	}
	return &profile, nil
}

// buildProfileSystemPrompt группирует отвеченные пары по фазам в порядке
// объявления фаз и добавляет инструкцию синтеза.
func buildProfileSystemPrompt(responses []models.JournalResponse) string {
	var contextBuilder strings.Builder
	writeEntry := func(r models.JournalResponse) {
		category := string(r.Category)
		if category == "" {
			category = "general"
		}
		if contextBuilder.Len() > 0 {
			contextBuilder.WriteString("\n\n")
		}
		fmt.Fprintf(&contextBuilder, "[%s] Q: %s\nA: %s", category, r.Question, r.Answer)
	}

	seen := make(map[int]bool)
	for _, category := range prompts.Categories {
		for i, r := range responses {
			if strings.TrimSpace(r.Answer) == "" || r.Category != category {
				continue
			}
			writeEntry(r)
			seen[i] = true
		}
	}
	for i, r := range responses {
		if seen[i] || strings.TrimSpace(r.Answer) == "" {
			continue
		}
		writeEntry(r)
	}

	return fmt.Sprintf(`You are an expert at synthesizing personal reflections into comprehensive profiles. Your task is to analyze a series of journal responses and extract a detailed profile that can be used to generate a personalized vision board.

JOURNAL RESPONSES:
%s

ANALYZE THESE RESPONSES AND EXTRACT:

1. YEAR WORD: What single word or short phrase captures their vision? Look for explicitly stated words or synthesize from themes.

2. YEAR FEELING: How do they want to feel at year end? What emotional state are they seeking?

3. CORE VALUES (3-5): What matters most to them? What won't they compromise on? Look for repeated themes.

4. IDENTITY STATEMENTS: "I am becoming someone who..." statements. How do they see their future self?

5. LIFE AREAS: What specific areas do they want to improve? For each, note their aspiration and current state if mentioned.

6. OBSTACLES: What fears, blocks, or patterns did they identify? Include any strategies they mentioned.

7. ACTION ITEMS: What specific actions or small steps did they mention wanting to take?

8. EMOTIONAL GOALS: Beyond achievements, what emotional experiences are they seeking?

9. KEY THEMES: What words, metaphors, or images keep appearing? (These are great for visual imagery)

10. PERSONAL MANTRA: What phrase would remind them of their why? Can be extracted or synthesized.

11. RELATIONSHIPS: Who are the important people? What role do connections play in their vision?

12. DAILY VISION: What does their ideal day look like? Morning routines, daily rhythms?

13. GRATITUDES: What do they already appreciate that supports their vision?

14. SUMMARY: A 2-3 sentence narrative summary of their overall vision for the year.

RESPOND WITH JSON:
{
  "yearWord": "string - their core word or theme",
  "yearFeeling": "string - how they want to feel",
  "coreValues": ["array of 3-5 values"],
  "identityStatements": ["array of identity statements"],
  "lifeAreas": [
    { "area": "name", "aspiration": "what they want", "currentState": "where they are now if mentioned" }
  ],
  "obstacles": [
    { "obstacle": "the challenge", "strategy": "how they plan to address it if mentioned" }
  ],
  "actionItems": ["specific actions they want to take"],
  "emotionalGoals": ["emotional states they're seeking"],
  "keyThemes": ["recurring themes, metaphors, imagery"],
  "personalMantra": "their reminder phrase",
  "relationships": ["key relationships and their role"],
  "dailyVision": "description of their ideal day",
  "gratitudes": ["things they're grateful for"],
  "summary": "2-3 sentence summary"
}

Be comprehensive but accurate - only include what's actually present or clearly implied in their responses. Don't invent details they didn't share.`, contextBuilder.String())
}

// heuristicProfile строит профиль напрямую из ответов: фильтрация по
// категориям плюс частотное извлечение ключевых слов.
func heuristicProfile(responses []models.JournalResponse) *models.UserProfile {
	answers := make([]models.JournalResponse, 0, len(responses))
	for _, r := range responses {
		if strings.TrimSpace(r.Answer) != "" {
			answers = append(answers, r)
		}
	}

	var allText strings.Builder
	for _, r := range answers {
		allText.WriteString(r.Answer)
		allText.WriteString(" ")
	}

	profile := &models.UserProfile{
		YearWord:       "Growth",
		YearFeeling:    "Fulfilled and proud",
		CoreValues:     []string{"growth", "authenticity", "connection"},
		EmotionalGoals: []string{"peace", "joy", "fulfillment"},
		KeyThemes:      extractKeywords(allText.String()),
		PersonalMantra: models.DefaultMantra,
		Summary: fmt.Sprintf(
			"This person is focused on personal transformation in 2026, with %d reflections guiding their vision.",
			len(answers),
		),
	}

	for _, r := range answers {
		switch r.Category {
		case models.CategoryYear:
			if profile.YearFeeling == "Fulfilled and proud" {
				profile.YearFeeling = truncate(r.Answer, 100)
			}
		case models.CategoryIdentity:
			profile.IdentityStatements = append(profile.IdentityStatements, truncate(r.Answer, maxFieldChars))
		case models.CategoryLifeAreas:
			profile.LifeAreas = append(profile.LifeAreas, models.LifeArea{
				Area:       "personal growth",
				Aspiration: truncate(r.Answer, maxFieldChars),
			})
		case models.CategoryObstacles:
			profile.Obstacles = append(profile.Obstacles, models.Obstacle{
				Obstacle: truncate(r.Answer, maxFieldChars),
			})
		case models.CategoryClosing:
			profile.ActionItems = append(profile.ActionItems, truncate(r.Answer, maxFieldChars))
		}
	}

	return profile
}

// stopWords - слова, исключаемые из частотного извлечения ключевых слов.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "must": true, "i": true, "me": true,
	"my": true, "myself": true, "we": true, "our": true, "you": true, "your": true,
	"it": true, "its": true, "this": true, "that": true, "these": true, "those": true,
	"what": true, "which": true, "who": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "each": true, "every": true, "both": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true, "no": true,
	"not": true, "only": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "just": true, "can": true, "now": true, "want": true, "feel": true,
	"like": true, "really": true, "also": true, "much": true, "many": true, "one": true,
	"two": true, "three": true, "year": true, "time": true, "way": true, "day": true,
	"life": true, "things": true, "thing": true, "make": true, "get": true, "go": true,
	"see": true, "know": true, "think": true, "take": true, "come": true, "into": true,
	"about": true, "out": true, "up": true,
}

// extractKeywords возвращает до 10 самых частых содержательных слов текста:
// нижний регистр, без пунктуации, без стоп-слов и слов короче 4 символов.
// Равные частоты упорядочиваются лексикографически для детерминизма.
func extractKeywords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	freq := make(map[string]int)
	for _, w := range words {
		if len(w) <= 3 || stopWords[w] {
			continue
		}
		freq[w]++
	}

	keywords := make([]string, 0, len(freq))
	for w := range freq {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return keywords
}

// truncate обрезает строку до n рун.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
