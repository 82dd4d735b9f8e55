package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JournalResponse - один сохраненный ответ. PromptID уникален внутри журнала:
// повторный ответ на тот же промпт перезаписывает запись на месте.
type JournalResponse struct {
	PromptID  string         `json:"promptId"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Category  PromptCategory `json:"category,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Journal - сессия рефлексии пользователя.
type Journal struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Responses  []JournalResponse `json:"responses"`
	Profile    *UserProfile      `json:"profile,omitempty"`
	BoardID    *uuid.UUID        `json:"boardId,omitempty"`
	IsComplete bool              `json:"isComplete"`
}

// NewJournal создает пустой журнал.
func NewJournal(title string) *Journal {
	now := time.Now()
	return &Journal{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Responses: []JournalResponse{},
	}
}

// SaveResponse сохраняет ответ: существующая запись с тем же PromptID
// обновляется на месте (длина и порядок остальных записей не меняются),
// новая добавляется в конец.
func (j *Journal) SaveResponse(resp JournalResponse) {
	for i := range j.Responses {
		if j.Responses[i].PromptID == resp.PromptID {
			j.Responses[i] = resp
			return
		}
	}
	j.Responses = append(j.Responses, resp)
}

// ResponseFor возвращает сохраненный ответ на промпт, если он есть.
func (j *Journal) ResponseFor(promptID string) (JournalResponse, bool) {
	for _, r := range j.Responses {
		if r.PromptID == promptID {
			return r, true
		}
	}
	return JournalResponse{}, false
}

// AnsweredResponses возвращает записи с непустым (после trim) ответом.
func (j *Journal) AnsweredResponses() []JournalResponse {
	answered := make([]JournalResponse, 0, len(j.Responses))
	for _, r := range j.Responses {
		if strings.TrimSpace(r.Answer) != "" {
			answered = append(answered, r)
		}
	}
	return answered
}

// ConversationHistory возвращает отвеченные пары вопрос/ответ в порядке ввода.
func (j *Journal) ConversationHistory() []ConversationEntry {
	answered := j.AnsweredResponses()
	history := make([]ConversationEntry, 0, len(answered))
	for _, r := range answered {
		history = append(history, ConversationEntry{
			Question: r.Question,
			Answer:   r.Answer,
			Category: r.Category,
		})
	}
	return history
}
