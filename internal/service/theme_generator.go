package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"visionboard-server/internal/models"
	"visionboard-server/pkg/ai"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Размеры плитки по умолчанию при материализации элементов.
const (
	defaultElementWidth  = 350
	defaultElementHeight = 280
)

// ThemeGenerator превращает профиль и ответы журнала в набор элементов доски.
// Единственная фаза конвейера досок, которой разрешено возвращать ошибку:
// сбой транспорта отдается наверх, а неразборчивый ответ модели подменяется
// полным резервным набором тем.
type ThemeGenerator struct {
	aiClient AIClient
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewThemeGenerator создает ThemeGenerator с заданным источником случайности.
func NewThemeGenerator(aiClient AIClient, rng *rand.Rand, logger *zap.Logger) *ThemeGenerator {
	return &ThemeGenerator{
		aiClient: aiClient,
		rng:      rng,
		logger:   logger.Named("ThemeGenerator"),
	}
}

// ImageCountFor возвращает число отвеченных записей, суммарный счетчик слов
// и целевое число изображений для них.
func ImageCountFor(responses []models.JournalResponse) (answers, words, imageCount int) {
	for _, r := range responses {
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		answers++
		words += len(strings.Fields(r.Answer))
	}

	imageCount = 10
	switch {
	case answers >= 10 && words > 200:
		imageCount = 15
	case answers >= 7 && words > 100:
		imageCount = 13
	case answers >= 4:
		imageCount = 12
	}
	return answers, words, imageCount
}

type themesPayload struct {
	Themes []models.Theme `json:"themes"`
}

// GenerateElements генерирует темы и превращает их в элементы холста.
func (g *ThemeGenerator) GenerateElements(ctx context.Context, profile *models.UserProfile, responses []models.JournalResponse) ([]models.CanvasElement, error) {
	answers, words, imageCount := ImageCountFor(responses)
	g.logger.Info("Generating board themes",
		zap.Int("answers", answers),
		zap.Int("words", words),
		zap.Int("imageCount", imageCount),
	)

	systemInstruction := buildThemeSystemPrompt(imageCount)
	userPrompt := buildThemeUserPrompt(profile, responses, imageCount)

	text, err := g.aiClient.GenerateText(ctx, systemInstruction, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBoardGenerationFailed, err)
	}

	themes, parseErr := parseThemes(text)
	if parseErr != nil {
		g.logger.Warn("Theme response unparsable, using fallback set", zap.Error(parseErr))
		themes = fallbackThemeSet(profile)
	}

	themes = PadAndTrim(themes, imageCount)
	themes = NormalizeStyles(themes)
	themes = NormalizeGridSizes(themes)
	themes = g.shuffleKeepingFirst(themes)

	elements := make([]models.CanvasElement, 0, len(themes))
	for i, theme := range themes {
		elements = append(elements, models.CanvasElement{
			ID:       uuid.New(),
			Type:     "image",
			Position: models.Position{},
			Size:     models.Size{Width: defaultElementWidth, Height: defaultElementHeight},
			Layer:    i,
			Data: models.ImageData{
				Src:                "",
				Prompt:             theme.ImagePrompt,
				IsGenerated:        true,
				Style:              theme.Style,
				Title:              theme.Title,
				Affirmation:        theme.Affirmation,
				GridSize:           theme.GridSize,
				PersonalConnection: theme.PersonalConnection,
				Status:             models.StatusPending,
			},
		})
	}

	g.logger.Info("Board elements generated", zap.Int("count", len(elements)))
	return elements, nil
}

func parseThemes(text string) ([]models.Theme, error) {
	raw, err := ai.ExtractFirstJSONObject(text)
	if err != nil {
		return nil, err
	}
	var payload themesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("themes JSON does not match schema: %w", err)
	}
	if len(payload.Themes) == 0 {
		return nil, fmt.Errorf("themes array is empty")
	}
	return payload.Themes, nil
}

// fallbackThemeSet возвращает копию резервного набора, вплетая слово года
// пользователя в первую тему.
func fallbackThemeSet(profile *models.UserProfile) []models.Theme {
	themes := append([]models.Theme(nil), fallbackThemes...)
	if profile != nil && profile.YearWord != "" {
		themes[0].Title = fmt.Sprintf("Year of %s", profile.YearWord)
		themes[0].ImagePrompt = fmt.Sprintf("%s, evoking the spirit of %s", themes[0].ImagePrompt, profile.YearWord)
		themes[0].Affirmation = fmt.Sprintf("My year of %s begins now", profile.YearWord)
		themes[0].PersonalConnection = fmt.Sprintf("Anchored in your word: %s", profile.YearWord)
	}
	return themes
}

// PadAndTrim доводит список ровно до count тем, циклически добивая padThemes.
func PadAndTrim(themes []models.Theme, count int) []models.Theme {
	out := append([]models.Theme(nil), themes...)
	for len(out) < count {
		out = append(out, padThemes[len(out)%len(padThemes)])
	}
	return out[:count]
}

// NormalizeStyles заменяет пустые и неизвестные стили на стиль из общего
// набора по позиции. Идемпотентна.
func NormalizeStyles(themes []models.Theme) []models.Theme {
	valid := make(map[string]bool, len(AvailableStyles))
	for _, s := range AvailableStyles {
		valid[s] = true
	}
	out := append([]models.Theme(nil), themes...)
	for i := range out {
		if !valid[out[i].Style] {
			out[i].Style = AvailableStyles[i%len(AvailableStyles)]
		}
	}
	return out
}

// NormalizeGridSizes назначает размеры позиционно: первые largeCount тем
// получают large, следующие mediumCount - medium, остальные small.
// Идемпотентна.
func NormalizeGridSizes(themes []models.Theme) []models.Theme {
	n := len(themes)
	largeCount := n * 2 / 10
	if largeCount > 3 {
		largeCount = 3
	}
	mediumCount := n * 35 / 100
	if mediumCount > 5 {
		mediumCount = 5
	}

	out := append([]models.Theme(nil), themes...)
	for i := range out {
		switch {
		case i < largeCount:
			out[i].GridSize = models.GridLarge
		case i < largeCount+mediumCount:
			out[i].GridSize = models.GridMedium
		default:
			out[i].GridSize = models.GridSmall
		}
	}
	return out
}

// shuffleKeepingFirst перемешивает темы, оставляя первую на месте, чтобы
// размеры были размазаны по сетке, но главная тема оставалась крупной.
func (g *ThemeGenerator) shuffleKeepingFirst(themes []models.Theme) []models.Theme {
	if len(themes) < 3 {
		return themes
	}
	out := append([]models.Theme(nil), themes...)
	rest := out[1:]

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(rest) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
	return out
}

func buildThemeSystemPrompt(imageCount int) string {
	return fmt.Sprintf(`You are an expert vision board designer creating deeply personalized, evocative imagery. Your goal is to transform journal reflections into powerful visual metaphors.

CRITICAL RULES FOR IMAGE PROMPTS:
1. NEVER include people, human figures, faces, or body parts
2. Focus on: scenes, objects, nature, textures, atmospheres, symbolic items
3. Convey emotions through environment, lighting, and composition
4. Use metaphors: "achievement" = mountain peak, trophy, sunrise; "peace" = still water, zen garden, soft clouds
5. Be SPECIFIC and DETAILED in descriptions

Return a JSON object:
{
  "themes": [
    {
      "title": "Short theme name (2-3 words)",
      "imagePrompt": "Detailed scene description WITHOUT any people - focus on objects, nature, atmosphere",
      "affirmation": "Personal affirmation using their words/themes",
      "style": "one of: photography, watercolor, abstract, oilpainting, minimalist, impressionist, cinematic, macro, landscape, symbolic, dreamy, vintage",
      "gridSize": "small | medium | large",
      "personalConnection": "one sentence tying this image to their own words"
    }
  ]
}

STYLE GUIDELINES (vary these across the board for visual interest):
- photography: Real-world scenes, professional quality
- watercolor: Soft, flowing, artistic, emotional
- abstract: Bold shapes, conceptual, modern art
- oilpainting: Rich textures, classical, museum-quality
- minimalist: Clean, simple, zen, negative space
- impressionist: Soft focus, dappled light, dreamy
- cinematic: Dramatic lighting, film-like, widescreen feel
- macro: Extreme close-ups, intricate details, textures
- landscape: Epic vistas, nature, panoramic
- symbolic: Meaningful objects, metaphorical imagery
- dreamy: Ethereal, soft glow, magical atmosphere
- vintage: Nostalgic, film grain, muted tones

IMAGE PROMPT EXAMPLES (no people):
- "achievement" → "Golden trophy on marble pedestal, sunlight streaming through window, dust particles in light, sense of accomplishment"
- "peace" → "Still pond at dawn, single lotus flower, mist rising from water, mountains reflected, zen atmosphere"
- "growth" → "Seedling pushing through rich dark soil, dewdrops on leaves, soft morning light, macro detail"
- "creativity" → "Artist's palette covered in vibrant paint, scattered brushes, canvas texture, studio window light"
- "connection" → "Two coffee cups on wooden table by window, steam rising, cozy blanket, rain outside"
- "adventure" → "Worn leather hiking boots on mountain trail, map and compass, pine forest backdrop"

GRID SIZE DISTRIBUTION for %d images:
- 2-3 "large" (most important themes, year word, primary goals)
- 4-5 "medium" (significant supporting themes)
- Remaining "small" (complementary imagery)

Generate EXACTLY %d themes with VARIED styles (use at least 6 different styles).
Extract specific details from the journal and translate them into vivid scene descriptions.`, imageCount, imageCount)
}

// buildThemeUserPrompt строит пользовательский контекст. Синтезированный
// профиль предпочитается сырой расшифровке вопрос-ответ: транскрипт
// отправляется только когда профиля нет.
func buildThemeUserPrompt(profile *models.UserProfile, responses []models.JournalResponse, imageCount int) string {
	reflectionContext := profileContext(profile)
	if reflectionContext == "" {
		reflectionContext = journalTranscript(responses)
	}
	if reflectionContext == "" {
		return fmt.Sprintf("Create a beautiful, inspiring vision board with %d images for someone beginning their 2026 journey. Themes: new beginnings, self-discovery, growth, peace, creativity, connection, adventure, health, abundance, dreams. Remember: NO people in any image prompts - only scenes, objects, nature, and atmosphere.", imageCount)
	}
	return fmt.Sprintf("Create a deeply personalized vision board with %d images based on these journal reflections. Remember: NO people in any image prompts - only scenes, objects, nature, and atmosphere:\n\n%s", imageCount, reflectionContext)
}

func journalTranscript(responses []models.JournalResponse) string {
	var b strings.Builder
	for _, r := range responses {
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s", r.Question, r.Answer)
	}
	return b.String()
}

// profileContext собирает все помеченные секции профиля, пропуская пустые.
func profileContext(profile *models.UserProfile) string {
	if profile == nil {
		return ""
	}
	var b strings.Builder
	writeLine := func(label, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", label, value)
	}

	writeLine("Year word", profile.YearWord)
	writeLine("Desired feeling", profile.YearFeeling)
	writeLine("Core values", strings.Join(profile.CoreValues, ", "))
	writeLine("Identity", strings.Join(profile.IdentityStatements, "; "))

	lifeAreas := make([]string, 0, len(profile.LifeAreas))
	for _, la := range profile.LifeAreas {
		line := fmt.Sprintf("%s: %s", la.Area, la.Aspiration)
		if la.CurrentState != "" {
			line += fmt.Sprintf(" (currently: %s)", la.CurrentState)
		}
		lifeAreas = append(lifeAreas, line)
	}
	writeLine("Life areas", strings.Join(lifeAreas, "; "))

	obstacles := make([]string, 0, len(profile.Obstacles))
	for _, o := range profile.Obstacles {
		line := o.Obstacle
		if o.Strategy != "" {
			line += fmt.Sprintf(" (strategy: %s)", o.Strategy)
		}
		obstacles = append(obstacles, line)
	}
	writeLine("Obstacles", strings.Join(obstacles, "; "))

	writeLine("Emotional goals", strings.Join(profile.EmotionalGoals, ", "))
	writeLine("Key themes", strings.Join(profile.KeyThemes, ", "))
	writeLine("Mantra", profile.PersonalMantra)
	writeLine("Daily vision", profile.DailyVision)
	writeLine("Relationships", strings.Join(profile.Relationships, "; "))
	writeLine("Action items", strings.Join(profile.ActionItems, "; "))
	writeLine("Gratitudes", strings.Join(profile.Gratitudes, "; "))
	writeLine("Summary", profile.Summary)
	return b.String()
}
