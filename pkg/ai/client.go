// Package ai - клиент границы генерации текста и изображений.
// Ответы провайдера не имеют гарантированного формата; извлечение JSON
// выполняют потребители через ExtractFirstJSONObject.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

const encodingName = "cl100k_base"

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visionboard_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"kind", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "visionboard_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	aiPromptTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "visionboard_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
	)
)

// Client предоставляет доступ к API нейросети (текст и изображения).
type Client struct {
	client           *openai.Client
	modelName        string
	imageModel       string
	timeout          time.Duration
	maxRetries       int
	promptTokenLimit int
	encoder          *tiktoken.Tiktoken
}

// Config содержит конфигурацию клиента нейросети.
type Config struct {
	APIKey           string
	BaseURL          string
	ModelName        string
	ImageModel       string
	Timeout          int // секунды на один вызов
	MaxRetries       int
	PromptTokenLimit int // бюджет токенов на пользовательский промпт, 0 - без лимита
}

// New создает новый экземпляр клиента нейросети.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not configured")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "x-ai/grok-3-mini"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = openai.CreateImageModelDallE3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	encoder, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", encodingName, err)
	}

	return &Client{
		client:           openai.NewClientWithConfig(config),
		modelName:        cfg.ModelName,
		imageModel:       cfg.ImageModel,
		timeout:          time.Duration(cfg.Timeout) * time.Second,
		maxRetries:       cfg.MaxRetries,
		promptTokenLimit: cfg.PromptTokenLimit,
		encoder:          encoder,
	}, nil
}

// CountTokens возвращает число токенов в тексте.
func (c *Client) CountTokens(text string) int {
	return len(c.encoder.Encode(text, nil, nil))
}

// clampPrompt урезает промпт до бюджета токенов, отбрасывая блоки
// с начала: свежие ответы в конце беседы важнее ранних.
func (c *Client) clampPrompt(text string) string {
	if c.promptTokenLimit <= 0 || c.CountTokens(text) <= c.promptTokenLimit {
		return text
	}

	blocks := strings.Split(text, "\n\n")
	for len(blocks) > 1 {
		blocks = blocks[1:]
		candidate := strings.Join(blocks, "\n\n")
		if c.CountTokens(candidate) <= c.promptTokenLimit {
			log.Warn().Int("limit", c.promptTokenLimit).Msg("Prompt exceeded token budget, leading blocks dropped")
			return candidate
		}
	}

	// Остался один блок - обрезаем по токенам с конца.
	tokens := c.encoder.Encode(blocks[0], nil, nil)
	if len(tokens) > c.promptTokenLimit {
		tokens = tokens[len(tokens)-c.promptTokenLimit:]
	}
	log.Warn().Int("limit", c.promptTokenLimit).Msg("Prompt exceeded token budget, hard-truncated")
	return c.encoder.Decode(tokens)
}

// GenerateText выполняет один чат-запрос: системная инструкция плюс
// пользовательский промпт. Формат ответа не гарантирован.
func (c *Client) GenerateText(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt = c.clampPrompt(userPrompt)
	aiPromptTokens.Observe(float64(c.CountTokens(systemInstruction) + c.CountTokens(userPrompt)))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
		TopP:        0.95,
	}

	attempts := 0
	for attempts < c.maxRetries {
		attempts++

		start := time.Now()
		resp, err := c.client.CreateChatCompletion(ctx, req)
		aiRequestDuration.WithLabelValues("text").Observe(time.Since(start).Seconds())

		if err != nil {
			aiRequestsTotal.WithLabelValues("text", "error").Inc()
			log.Error().Err(err).Int("attempt", attempts).Msg("CreateChatCompletion failed")
			if attempts >= c.maxRetries {
				return "", fmt.Errorf("AI text generation failed after %d attempts: %w", attempts, err)
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			aiRequestsTotal.WithLabelValues("text", "empty").Inc()
			log.Warn().Int("attempt", attempts).Msg("Empty response from AI")
			if attempts >= c.maxRetries {
				return "", errors.New("empty response from AI API after retries")
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		aiRequestsTotal.WithLabelValues("text", "success").Inc()
		return resp.Choices[0].Message.Content, nil
	}

	return "", errors.New("failed to get response from AI API")
}

// GenerateImage генерирует одно изображение по промпту и возвращает его
// как data URL, пригодный для хранения в src элемента доски.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	aiRequestDuration.WithLabelValues("image").Observe(time.Since(start).Seconds())

	if err != nil {
		aiRequestsTotal.WithLabelValues("image", "error").Inc()
		log.Error().Err(err).Msg("CreateImage failed")
		return "", fmt.Errorf("AI image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		aiRequestsTotal.WithLabelValues("image", "empty").Inc()
		return "", errors.New("empty image response from AI API")
	}

	aiRequestsTotal.WithLabelValues("image", "success").Inc()
	log.Info().Dur("duration", time.Since(start)).Msg("Image generated")
	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
