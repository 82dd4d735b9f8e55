package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"visionboard-server/internal/flow"
	"visionboard-server/internal/models"
	"visionboard-server/internal/prompts"
	"visionboard-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Direction - направление шага по промптам.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
)

// session - живое состояние активной сессии журналинга. Автомат и список
// промптов (включая динамические, которые никогда не персистятся) живут
// только в памяти процесса.
type session struct {
	machine *flow.Machine
	prompts []models.Prompt
}

// SessionView - снимок сессии для отдачи клиенту.
type SessionView struct {
	JournalID          uuid.UUID       `json:"journalId"`
	Prompts            []models.Prompt `json:"prompts"`
	Index              int             `json:"index"`
	State              flow.State      `json:"state"`
	BatchNumber        int             `json:"batchNumber"`
	Progress           float64         `json:"progress"`
	PrescribedComplete bool            `json:"prescribedComplete"`
	AnsweredCount      int             `json:"answeredCount"`
	EditMode           bool            `json:"editMode"`
}

// CompletionResult - итог завершения сессии.
type CompletionResult struct {
	Journal *models.Journal `json:"journal"`
	Board   *models.Board   `json:"board"`
}

// SessionService оркестрирует поток журналинга: автомат фаз, сохранение
// ответов, генерацию динамических батчей и терминальное создание доски.
type SessionService struct {
	journals  repository.JournalRepository
	boards    repository.BoardRepository
	questions *QuestionService
	profiles  *ProfileService
	themes    *ThemeGenerator
	batchSize int
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewSessionService создает SessionService.
func NewSessionService(
	journals repository.JournalRepository,
	boards repository.BoardRepository,
	questions *QuestionService,
	profiles *ProfileService,
	themes *ThemeGenerator,
	batchSize int,
	logger *zap.Logger,
) *SessionService {
	if batchSize <= 0 {
		batchSize = prompts.QuestionBatchSize
	}
	return &SessionService{
		journals:  journals,
		boards:    boards,
		questions: questions,
		profiles:  profiles,
		themes:    themes,
		batchSize: batchSize,
		logger:    logger.Named("SessionService"),
		sessions:  make(map[uuid.UUID]*session),
	}
}

// CreateJournal создает новый журнал.
func (s *SessionService) CreateJournal(ctx context.Context, title string) (*models.Journal, error) {
	if strings.TrimSpace(title) == "" {
		title = "My 2026 Vision"
	}
	journal := models.NewJournal(title)
	if err := s.journals.Create(ctx, journal); err != nil {
		return nil, fmt.Errorf("ошибка создания журнала: %w", err)
	}
	s.logger.Info("Journal created", zap.String("journalID", journal.ID.String()))
	return journal, nil
}

// GetJournal возвращает журнал по id.
func (s *SessionService) GetJournal(ctx context.Context, id uuid.UUID) (*models.Journal, error) {
	return s.journals.GetByID(ctx, id)
}

// ListJournals возвращает все журналы.
func (s *SessionService) ListJournals(ctx context.Context) ([]models.Journal, error) {
	return s.journals.List(ctx)
}

// StartSession создает (или пересоздает) сессию журналинга для журнала.
// Курсор восстанавливается на первый неотвеченный предписанный промпт,
// не являющийся интерлюдией. Динамические промпты прошлых запусков не
// восстанавливаются: они существуют только на время сессии.
func (s *SessionService) StartSession(ctx context.Context, journalID uuid.UUID, editMode bool) (*SessionView, error) {
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if editMode && journal.BoardID == nil {
		return nil, fmt.Errorf("%w: журнал не имеет доски для редактирования", models.ErrBadRequest)
	}

	prescribed := append([]models.Prompt(nil), prompts.Prescribed...)
	machine := flow.NewMachine(len(prescribed), editMode)

	// Свежий журнал начинается с нулевого промпта (интерлюдии в том числе);
	// интерлюдии пропускаются только при перемотке мимо уже отвеченных.
	cursor := 0
	if len(journal.Responses) > 0 {
		for i, p := range prescribed {
			if p.IsInterlude {
				continue
			}
			if _, ok := journal.ResponseFor(p.ID); !ok {
				cursor = i
				break
			}
			cursor = i
		}
	}
	machine.SetIndex(cursor)

	sess := &session{machine: machine, prompts: prescribed}
	s.mu.Lock()
	s.sessions[journalID] = sess
	s.mu.Unlock()

	s.logger.Info("Session started",
		zap.String("journalID", journalID.String()),
		zap.Bool("editMode", editMode),
		zap.Int("cursor", cursor),
	)
	return s.view(journalID, sess, journal), nil
}

// GetSession возвращает снимок активной сессии.
func (s *SessionService) GetSession(ctx context.Context, journalID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(journalID)
	if err != nil {
		return nil, err
	}
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	return s.view(journalID, sess, journal), nil
}

// SaveResponse сохраняет ответ на текущий промпт и делает шаг в указанном
// направлении. Пустой ответ на непройденный промпт не создает записи, но
// шаг по фазе все равно выполняется (вопросы можно пропускать). Повторный
// ответ перезаписывает запись на месте.
func (s *SessionService) SaveResponse(ctx context.Context, journalID uuid.UUID, promptID, answer string, direction Direction) (*SessionView, error) {
	sess, err := s.session(journalID)
	if err != nil {
		return nil, err
	}
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	prompt, ok := prompts.GetPromptByID(sess.prompts, promptID)
	if !ok {
		return nil, fmt.Errorf("%w: неизвестный промпт %s", models.ErrBadRequest, promptID)
	}

	_, answeredBefore := journal.ResponseFor(promptID)
	shouldSave := !prompt.IsInterlude && (strings.TrimSpace(answer) != "" || answeredBefore)
	if shouldSave {
		journal.SaveResponse(models.JournalResponse{
			PromptID:  prompt.ID,
			Question:  prompt.Question,
			Answer:    answer,
			Category:  prompt.Category,
			Timestamp: time.Now(),
		})
		if err := s.journals.Update(ctx, journal); err != nil {
			return nil, fmt.Errorf("ошибка сохранения ответа: %w", err)
		}
	}

	switch direction {
	case DirectionBack:
		err = sess.machine.Back()
	default:
		err = sess.machine.Advance(prompts.IsPrescribedPhaseComplete(journal.Responses))
	}
	if err != nil {
		return nil, err
	}

	return s.view(journalID, sess, journal), nil
}

// GenerateNextBatch запрашивает следующий батч динамических вопросов.
// Сбой генерации поглощается: автомат возвращается в transition, клиент
// получает актуальный снимок и может повторить запрос.
func (s *SessionService) GenerateNextBatch(ctx context.Context, journalID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(journalID)
	if err != nil {
		return nil, err
	}
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if err := sess.machine.RequestBatch(); err != nil {
		return nil, err
	}

	batch, genErr := s.questions.GenerateBatch(ctx, journal.ConversationHistory(), sess.machine.BatchNumber()+1, s.batchSize)
	if genErr != nil {
		s.logger.Warn("Question batch generation failed",
			zap.String("journalID", journalID.String()),
			zap.Error(genErr),
		)
		if err := sess.machine.BatchFailed(); err != nil {
			return nil, err
		}
		return s.view(journalID, sess, journal), nil
	}

	sess.prompts = append(sess.prompts, batch...)
	if err := sess.machine.BatchReady(len(batch)); err != nil {
		return nil, err
	}

	s.logger.Info("Question batch added",
		zap.String("journalID", journalID.String()),
		zap.Int("batchNumber", sess.machine.BatchNumber()),
		zap.Int("size", len(batch)),
	)
	return s.view(journalID, sess, journal), nil
}

// CompileProfile синтезирует профиль из текущих ответов журнала и сохраняет
// его, не завершая сессию. Активной сессии не требует.
func (s *SessionService) CompileProfile(ctx context.Context, journalID uuid.UUID) (*models.UserProfile, error) {
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	profile := s.profiles.CompileProfile(ctx, journal.Responses)
	journal.Profile = profile
	if err := s.journals.Update(ctx, journal); err != nil {
		return nil, fmt.Errorf("ошибка сохранения журнала: %w", err)
	}
	return profile, nil
}

// Finish завершает сессию: компилирует профиль, создает (или, в режиме
// редактирования, переиспользует) доску и наполняет ее элементами.
// Компиляция профиля не проваливается никогда; сбой генерации тем оставляет
// доску с нулем элементов, а журнал при этом остается завершенным.
func (s *SessionService) Finish(ctx context.Context, journalID uuid.UUID) (*CompletionResult, error) {
	sess, err := s.session(journalID)
	if err != nil {
		return nil, err
	}
	journal, err := s.journals.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if err := sess.machine.Finish(); err != nil {
		return nil, err
	}

	profile := s.profiles.CompileProfile(ctx, journal.Responses)
	journal.Profile = profile
	journal.IsComplete = true

	var board *models.Board
	if sess.machine.EditMode() && journal.BoardID != nil {
		board, err = s.boards.GetByID(ctx, *journal.BoardID)
		if err != nil {
			return nil, err
		}
	} else {
		board = models.NewBoard(journal.ID, journal.Title)
		if err := s.boards.Create(ctx, board); err != nil {
			return nil, fmt.Errorf("ошибка создания доски: %w", err)
		}
		boardID := board.ID
		journal.BoardID = &boardID
	}

	elements, genErr := s.themes.GenerateElements(ctx, profile, journal.Responses)
	if genErr != nil {
		s.logger.Error("Board element generation failed, board left empty",
			zap.String("boardID", board.ID.String()),
			zap.Error(genErr),
		)
	} else {
		board.Canvas.Elements = elements
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("ошибка сохранения доски: %w", err)
	}
	if err := s.journals.Update(ctx, journal); err != nil {
		return nil, fmt.Errorf("ошибка сохранения журнала: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, journalID)
	s.mu.Unlock()

	s.logger.Info("Session finished",
		zap.String("journalID", journalID.String()),
		zap.String("boardID", board.ID.String()),
		zap.Int("elements", len(board.Canvas.Elements)),
	)
	return &CompletionResult{Journal: journal, Board: board}, nil
}

func (s *SessionService) session(journalID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[journalID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) view(journalID uuid.UUID, sess *session, journal *models.Journal) *SessionView {
	return &SessionView{
		JournalID:          journalID,
		Prompts:            sess.prompts,
		Index:              sess.machine.Index(),
		State:              sess.machine.State(),
		BatchNumber:        sess.machine.BatchNumber(),
		Progress:           prompts.Progress(sess.machine.Index(), sess.machine.PromptCount()),
		PrescribedComplete: prompts.IsPrescribedPhaseComplete(journal.Responses),
		AnsweredCount:      prompts.AnsweredCount(sess.prompts, journal.Responses),
		EditMode:           sess.machine.EditMode(),
	}
}
