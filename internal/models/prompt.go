package models

// PromptCategory - фаза журналинга, к которой относится вопрос.
type PromptCategory string

const (
	CategoryWelcome   PromptCategory = "welcome"
	CategoryYear      PromptCategory = "year"
	CategoryValues    PromptCategory = "values"
	CategoryIdentity  PromptCategory = "identity"
	CategoryLifeAreas PromptCategory = "life-areas"
	CategoryObstacles PromptCategory = "obstacles"
	CategoryClosing   PromptCategory = "closing"
	CategoryDynamic   PromptCategory = "dynamic"
)

// Prompt - определение одного вопроса (предписанного или динамического).
// Динамические промпты живут только в памяти сессии; персистятся лишь ответы.
type Prompt struct {
	ID                  string         `json:"id"`
	Category            PromptCategory `json:"category"`
	Question            string         `json:"question"`
	Subtext             string         `json:"subtext,omitempty"`
	Placeholder         string         `json:"placeholder,omitempty"`
	PsychologyTechnique string         `json:"psychologyTechnique,omitempty"`
	// IsInterlude - информационный промпт без ответа; не участвует
	// в подсчете отвеченных вопросов и завершенности фазы.
	IsInterlude bool `json:"isInterlude,omitempty"`
	IsDynamic   bool `json:"isDynamic,omitempty"`
}

// ConversationEntry - пара вопрос/ответ для контекста AI-запросов.
type ConversationEntry struct {
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Category PromptCategory `json:"category,omitempty"`
}
