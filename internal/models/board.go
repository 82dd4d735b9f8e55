package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GridSize - размер плитки в сетке доски.
type GridSize string

const (
	GridSmall  GridSize = "small"
	GridMedium GridSize = "medium"
	GridLarge  GridSize = "large"
)

// ElementStatus - статус генерации изображения элемента.
// Начинается с pending и переходит в complete (с непустым src) или error;
// возврат в pending возможен только явной регенерацией пользователем.
type ElementStatus string

const (
	StatusPending  ElementStatus = "pending"
	StatusComplete ElementStatus = "complete"
	StatusError    ElementStatus = "error"
)

// Theme - сгенерированная визуальная концепция до превращения в элемент доски.
type Theme struct {
	Title              string   `json:"title"`
	ImagePrompt        string   `json:"imagePrompt"`
	Affirmation        string   `json:"affirmation"`
	Style              string   `json:"style"`
	GridSize           GridSize `json:"gridSize"`
	PersonalConnection string   `json:"personalConnection,omitempty"`
}

// Position - координаты элемента на холсте.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size - размеры элемента.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageData - полезная нагрузка элемента-изображения.
type ImageData struct {
	Src                string        `json:"src"`
	Prompt             string        `json:"prompt,omitempty"`
	IsGenerated        bool          `json:"isGenerated"`
	Style              string        `json:"style,omitempty"`
	Title              string        `json:"title,omitempty"`
	Affirmation        string        `json:"affirmation,omitempty"`
	GridSize           GridSize      `json:"gridSize,omitempty"`
	Status             ElementStatus `json:"status,omitempty"`
	PersonalConnection string        `json:"personalConnection,omitempty"`
}

// CanvasElement - одна персистентная плитка доски.
type CanvasElement struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Position Position  `json:"position"`
	Size     Size      `json:"size"`
	Rotation float64   `json:"rotation"`
	Layer    int       `json:"layer"`
	Locked   bool      `json:"locked"`
	Data     ImageData `json:"data"`
}

// Background - конфигурация фона холста.
type Background struct {
	Type           string  `json:"type"`
	Value          string  `json:"value"`
	SecondaryValue string  `json:"secondaryValue,omitempty"`
	Direction      float64 `json:"direction,omitempty"`
}

// Viewport - позиция и масштаб видимой области холста.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// CanvasState - полное состояние холста доски.
type CanvasState struct {
	Background Background      `json:"background"`
	Elements   []CanvasElement `json:"elements"`
	Viewport   Viewport        `json:"viewport"`
}

// BoardVersion - иммутабельный снимок холста на момент экспорта.
type BoardVersion struct {
	ID          uuid.UUID   `json:"id"`
	Snapshot    CanvasState `json:"snapshot"`
	CreatedAt   time.Time   `json:"createdAt"`
	Description string      `json:"description,omitempty"`
}

// MaxBoardVersions - максимум хранимых снимков доски.
const MaxBoardVersions = 10

// Board - коллекция элементов с холстом и историей снимков.
// JournalID может быть нулевым для "чистой" доски без журнала.
type Board struct {
	ID        uuid.UUID      `json:"id"`
	JournalID uuid.UUID      `json:"journalId"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Canvas    CanvasState    `json:"canvas"`
	Versions  []BoardVersion `json:"versions"`
}

// NewBoard создает доску с дефолтным темным фоном и пустым холстом.
func NewBoard(journalID uuid.UUID, title string) *Board {
	now := time.Now()
	return &Board{
		ID:        uuid.New(),
		JournalID: journalID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Canvas: CanvasState{
			Background: Background{Type: "color", Value: "#0D0D0D"},
			Elements:   []CanvasElement{},
			Viewport:   Viewport{Zoom: 1},
		},
		Versions: []BoardVersion{},
	}
}

// ElementByID возвращает указатель на элемент холста по id.
func (b *Board) ElementByID(id uuid.UUID) *CanvasElement {
	for i := range b.Canvas.Elements {
		if b.Canvas.Elements[i].ID == id {
			return &b.Canvas.Elements[i]
		}
	}
	return nil
}

// AddVersion добавляет глубокую копию текущего холста в историю снимков,
// отбрасывая самые старые сверх лимита.
func (b *Board) AddVersion(description string) error {
	raw, err := json.Marshal(b.Canvas)
	if err != nil {
		return err
	}
	var snapshot CanvasState
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return err
	}
	b.Versions = append(b.Versions, BoardVersion{
		ID:          uuid.New(),
		Snapshot:    snapshot,
		CreatedAt:   time.Now(),
		Description: description,
	})
	if len(b.Versions) > MaxBoardVersions {
		b.Versions = b.Versions[len(b.Versions)-MaxBoardVersions:]
	}
	return nil
}
