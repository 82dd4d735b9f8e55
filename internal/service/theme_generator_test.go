package service_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"visionboard-server/internal/models"
	"visionboard-server/internal/service"
	"visionboard-server/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func responsesWithDepth(answers, wordsPerAnswer int) []models.JournalResponse {
	out := make([]models.JournalResponse, 0, answers)
	word := strings.TrimSpace(strings.Repeat("word ", wordsPerAnswer))
	for i := 0; i < answers; i++ {
		out = append(out, models.JournalResponse{
			PromptID: string(rune('a' + i)),
			Question: "Q",
			Answer:   word,
		})
	}
	return out
}

func TestImageCountFor(t *testing.T) {
	tests := []struct {
		name     string
		answers  int
		words    int
		expected int
	}{
		{"shallow journal", 2, 5, 10},
		{"four answers", 4, 5, 12},
		{"seven answers over 100 words", 7, 20, 13},
		{"seven answers few words", 7, 10, 12},
		{"ten answers over 200 words", 10, 25, 15},
		{"ten answers few words", 10, 5, 12},
		{"empty", 0, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, words, count := service.ImageCountFor(responsesWithDepth(tt.answers, tt.words))
			assert.Equal(t, tt.answers, answers)
			assert.Equal(t, tt.answers*tt.words, words)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestNormalizeStyles(t *testing.T) {
	themes := []models.Theme{
		{Style: "watercolor"},
		{Style: "neon-cyberpunk"},
		{Style: ""},
		{Style: "macro"},
	}
	out := service.NormalizeStyles(themes)
	assert.Equal(t, "watercolor", out[0].Style)
	assert.Equal(t, service.AvailableStyles[1], out[1].Style)
	assert.Equal(t, service.AvailableStyles[2], out[2].Style)
	assert.Equal(t, "macro", out[3].Style)

	// Идемпотентность: повторный прогон ничего не меняет.
	assert.Equal(t, out, service.NormalizeStyles(out))
}

func TestNormalizeGridSizes(t *testing.T) {
	t.Run("distribution for 13 themes", func(t *testing.T) {
		themes := make([]models.Theme, 13)
		out := service.NormalizeGridSizes(themes)

		var large, medium, small int
		for _, th := range out {
			switch th.GridSize {
			case models.GridLarge:
				large++
			case models.GridMedium:
				medium++
			case models.GridSmall:
				small++
			}
		}
		assert.Equal(t, 2, large)
		assert.Equal(t, 4, medium)
		assert.Equal(t, 7, small)
		assert.Equal(t, models.GridLarge, out[0].GridSize)
	})

	t.Run("caps at 3 large and 5 medium", func(t *testing.T) {
		out := service.NormalizeGridSizes(make([]models.Theme, 15))
		var large, medium int
		for _, th := range out {
			if th.GridSize == models.GridLarge {
				large++
			}
			if th.GridSize == models.GridMedium {
				medium++
			}
		}
		assert.Equal(t, 3, large)
		assert.Equal(t, 5, medium)
	})

	t.Run("idempotent", func(t *testing.T) {
		out := service.NormalizeGridSizes(make([]models.Theme, 10))
		assert.Equal(t, out, service.NormalizeGridSizes(out))
	})
}

func TestGenerateElements(t *testing.T) {
	ctx := context.Background()
	profile := &models.UserProfile{YearWord: "Momentum"}

	newGen := func(mockAI *mocks.MockAIClient) *service.ThemeGenerator {
		return service.NewThemeGenerator(mockAI, rand.New(rand.NewSource(1)), zap.NewNop())
	}

	t.Run("valid themes are materialized as pending elements", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)

		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{
			"themes": [
				{"title": "T1", "imagePrompt": "p1", "affirmation": "a1", "style": "macro", "gridSize": "small"},
				{"title": "T2", "imagePrompt": "p2", "affirmation": "a2", "style": "dreamy", "gridSize": "large"}
			]
		}`, nil).Once()

		elements, err := gen.GenerateElements(ctx, profile, responsesWithDepth(2, 5))
		require.NoError(t, err)
		// 2 темы добиты до 10.
		require.Len(t, elements, 10)
		for i, el := range elements {
			assert.Equal(t, "image", el.Type)
			assert.Equal(t, models.StatusPending, el.Data.Status)
			assert.Empty(t, el.Data.Src)
			assert.True(t, el.Data.IsGenerated)
			assert.Equal(t, i, el.Layer)
			assert.Equal(t, float64(350), el.Size.Width)
			assert.Equal(t, float64(280), el.Size.Height)
			assert.Contains(t, service.AvailableStyles, el.Data.Style)
		}
		// Первый элемент всегда крупный.
		assert.Equal(t, models.GridLarge, elements[0].Data.GridSize)
	})

	t.Run("element ids are unique", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return(`{"themes": [{"title": "T", "imagePrompt": "p"}]}`, nil).Once()

		elements, err := gen.GenerateElements(ctx, profile, nil)
		require.NoError(t, err)
		seen := map[string]bool{}
		for _, el := range elements {
			assert.False(t, seen[el.ID.String()])
			seen[el.ID.String()] = true
		}
	})

	t.Run("garbage response uses fallback set with year word", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("absolutely not json", nil).Once()

		elements, err := gen.GenerateElements(ctx, profile, responsesWithDepth(2, 5))
		require.NoError(t, err)
		require.Len(t, elements, 10)
		// Слово года вплетено в заголовок, промпт и аффирмацию первой темы.
		assert.Equal(t, "Year of Momentum", elements[0].Data.Title)
		assert.Contains(t, elements[0].Data.Prompt, "Momentum")
		assert.Contains(t, elements[0].Data.Affirmation, "Momentum")
	})

	t.Run("transport failure returns board generation error", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("", errors.New("upstream down")).Once()

		elements, err := gen.GenerateElements(ctx, profile, nil)
		assert.Nil(t, elements)
		assert.True(t, errors.Is(err, models.ErrBoardGenerationFailed))
	})

	t.Run("rich journal requests 15 themes", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		mockAI.On("GenerateText", ctx, mock.MatchedBy(func(sys string) bool {
			return strings.Contains(sys, "GRID SIZE DISTRIBUTION for 15 images")
		}), mock.Anything).Return("garbage", nil).Once()

		elements, err := gen.GenerateElements(ctx, profile, responsesWithDepth(10, 25))
		require.NoError(t, err)
		assert.Len(t, elements, 15)
		mockAI.AssertExpectations(t)
	})

	t.Run("same seed gives same order", func(t *testing.T) {
		run := func() []string {
			mockAI := new(mocks.MockAIClient)
			gen := service.NewThemeGenerator(mockAI, rand.New(rand.NewSource(42)), zap.NewNop())
			mockAI.On("GenerateText", ctx, mock.Anything, mock.Anything).Return("garbage", nil).Once()
			elements, err := gen.GenerateElements(ctx, profile, nil)
			require.NoError(t, err)
			titles := make([]string, 0, len(elements))
			for _, el := range elements {
				titles = append(titles, el.Data.Title)
			}
			return titles
		}
		assert.Equal(t, run(), run())
	})

	t.Run("no profile and no answers uses beginning-journey prompt", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		mockAI.On("GenerateText", ctx, mock.Anything, mock.MatchedBy(func(user string) bool {
			return strings.Contains(user, "beginning their 2026 journey")
		})).Return("garbage", nil).Once()

		_, err := gen.GenerateElements(ctx, nil, nil)
		require.NoError(t, err)
		mockAI.AssertExpectations(t)
	})

	t.Run("profile sections are preferred over the raw transcript", func(t *testing.T) {
		mockAI := new(mocks.MockAIClient)
		gen := newGen(mockAI)
		full := &models.UserProfile{
			YearWord:           "Momentum",
			YearFeeling:        "Fulfilled and proud",
			CoreValues:         []string{"growth", "honesty"},
			IdentityStatements: []string{"I am a finisher"},
			LifeAreas:          []models.LifeArea{{Area: "health", Aspiration: "run a marathon", CurrentState: "couch to 5k"}},
			Obstacles:          []models.Obstacle{{Obstacle: "fear of failure", Strategy: "small daily steps"}},
			ActionItems:        []string{"join the gym"},
			EmotionalGoals:     []string{"peace"},
			KeyThemes:          []string{"endurance"},
			PersonalMantra:     "One step at a time",
			Relationships:      []string{"weekly dinners with family"},
			DailyVision:        "Mornings that start slow",
			Gratitudes:         []string{"my quiet home"},
			Summary:            "Building endurance in every sense.",
		}

		var captured string
		mockAI.On("GenerateText", ctx, mock.Anything, mock.MatchedBy(func(user string) bool {
			captured = user
			return true
		})).Return("garbage", nil).Once()

		_, err := gen.GenerateElements(ctx, full, responsesWithDepth(2, 5))
		require.NoError(t, err)
		for _, marker := range []string{
			"run a marathon",
			"fear of failure",
			"join the gym",
			"weekly dinners with family",
			"my quiet home",
			"couch to 5k",
			"small daily steps",
		} {
			assert.Contains(t, captured, marker)
		}
		// Сырая расшифровка не отправляется, когда есть профиль.
		assert.NotContains(t, captured, "Q: ")
	})
}

func TestPadAndTrim(t *testing.T) {
	themes := []models.Theme{{Title: "A"}, {Title: "B"}}
	out := service.PadAndTrim(themes, 10)
	require.Len(t, out, 10)

	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "B", out[1].Title)
	// Добивка идет циклически по резервному короткому набору, начиная с
	// позиции, равной текущей длине списка.
	expected := []string{"Joy", "Focus", "Serenity", "Possibility", "Balance", "Joy", "Focus", "Serenity"}
	for i, title := range expected {
		assert.Equal(t, title, out[i+2].Title)
	}

	assert.Len(t, service.PadAndTrim(out, 4), 4)
}
