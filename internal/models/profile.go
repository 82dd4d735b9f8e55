package models

// LifeArea - сфера жизни с устремлением и (опционально) текущим состоянием.
type LifeArea struct {
	Area         string `json:"area"`
	Aspiration   string `json:"aspiration"`
	CurrentState string `json:"currentState,omitempty"`
}

// Obstacle - выявленное препятствие и (опционально) стратегия его преодоления.
type Obstacle struct {
	Obstacle string `json:"obstacle"`
	Strategy string `json:"strategy,omitempty"`
}

// UserProfile - структурированный синтез всей беседы. Схема фиксированная:
// после Validate ни одно поле не остается незаполненным (для списков без
// фолбэк-контента допустим пустой срез, но не nil).
type UserProfile struct {
	YearWord           string     `json:"yearWord"`
	YearFeeling        string     `json:"yearFeeling"`
	CoreValues         []string   `json:"coreValues"`
	IdentityStatements []string   `json:"identityStatements"`
	LifeAreas          []LifeArea `json:"lifeAreas"`
	Obstacles          []Obstacle `json:"obstacles"`
	ActionItems        []string   `json:"actionItems"`
	EmotionalGoals     []string   `json:"emotionalGoals"`
	KeyThemes          []string   `json:"keyThemes"`
	PersonalMantra     string     `json:"personalMantra"`
	Relationships      []string   `json:"relationships"`
	DailyVision        string     `json:"dailyVision"`
	Gratitudes         []string   `json:"gratitudes"`
	Summary            string     `json:"summary"`
}

// Детерминированные значения по умолчанию для недостающих полей профиля.
var (
	DefaultYearWord       = "Growth"
	DefaultYearFeeling    = "Fulfilled"
	DefaultCoreValues     = []string{"growth", "authenticity"}
	DefaultEmotionalGoals = []string{"peace", "joy"}
	DefaultKeyThemes      = []string{"transformation", "growth"}
	DefaultMantra         = "I am becoming who I'm meant to be"
	DefaultSummary        = "A personal vision focused on growth and transformation."
)

// Validate заполняет пустые или отсутствующие поля профиля значениями по
// умолчанию. Применяется всегда - и к ответу модели, и к эвристическому
// фолбэку, поэтому профиль никогда не бывает частичным.
func (p *UserProfile) Validate() {
	if p.YearWord == "" {
		p.YearWord = DefaultYearWord
	}
	if p.YearFeeling == "" {
		p.YearFeeling = DefaultYearFeeling
	}
	if len(p.CoreValues) == 0 {
		p.CoreValues = append([]string(nil), DefaultCoreValues...)
	}
	if p.IdentityStatements == nil {
		p.IdentityStatements = []string{}
	}
	if p.LifeAreas == nil {
		p.LifeAreas = []LifeArea{}
	}
	if p.Obstacles == nil {
		p.Obstacles = []Obstacle{}
	}
	if p.ActionItems == nil {
		p.ActionItems = []string{}
	}
	if len(p.EmotionalGoals) == 0 {
		p.EmotionalGoals = append([]string(nil), DefaultEmotionalGoals...)
	}
	if len(p.KeyThemes) == 0 {
		p.KeyThemes = append([]string(nil), DefaultKeyThemes...)
	}
	if p.PersonalMantra == "" {
		p.PersonalMantra = DefaultMantra
	}
	if p.Relationships == nil {
		p.Relationships = []string{}
	}
	if p.Gratitudes == nil {
		p.Gratitudes = []string{}
	}
	if p.Summary == "" {
		p.Summary = DefaultSummary
	}
}
