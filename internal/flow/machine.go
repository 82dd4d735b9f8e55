// Package flow реализует конечный автомат фаз журналинга:
// prescribed -> transition -> (generating -> dynamic -> transition)* -> complete.
package flow

import (
	"fmt"

	"visionboard-server/internal/models"
)

// State - состояние автомата.
type State string

const (
	// StatePrescribed - пользователь отвечает на предписанные вопросы.
	StatePrescribed State = "prescribed"
	// StateTransition - точка выбора: продолжить исследование или создать доску.
	StateTransition State = "transition"
	// StateGenerating - ожидание батча динамических вопросов.
	StateGenerating State = "generating"
	// StateDynamic - пользователь отвечает на динамический батч.
	StateDynamic State = "dynamic"
	// StateComplete - сессия завершена, доска создается.
	StateComplete State = "complete"
)

// Machine - явный автомат с курсором по списку промптов сессии.
// Внешние сбои сюда не попадают: автомат не имеет состояния ошибки,
// неудачная генерация батча возвращает его в transition.
type Machine struct {
	state           State
	index           int
	promptCount     int
	prescribedCount int
	batchNumber     int
	batchStart      int
	editMode        bool
}

// NewMachine создает автомат для сессии с prescribedCount предписанными
// промптами. editMode включает режим редактирования существующей доски:
// терминальное действие переиспользует id доски вместо создания новой.
func NewMachine(prescribedCount int, editMode bool) *Machine {
	return &Machine{
		state:           StatePrescribed,
		prescribedCount: prescribedCount,
		promptCount:     prescribedCount,
		editMode:        editMode,
	}
}

// State возвращает текущее состояние.
func (m *Machine) State() State { return m.state }

// Index возвращает курсор текущего промпта.
func (m *Machine) Index() int { return m.index }

// BatchNumber возвращает номер последнего успешно добавленного батча.
func (m *Machine) BatchNumber() int { return m.batchNumber }

// PromptCount возвращает длину списка промптов сессии.
func (m *Machine) PromptCount() int { return m.promptCount }

// EditMode сообщает, редактируется ли существующая доска.
func (m *Machine) EditMode() bool { return m.editMode }

// SetIndex восстанавливает курсор (например, на первый неотвеченный
// предписанный промпт при загрузке сессии).
func (m *Machine) SetIndex(index int) {
	if index < 0 {
		index = 0
	}
	if index >= m.promptCount {
		index = m.promptCount - 1
	}
	m.index = index
}

// Advance - шаг вперед. prescribedComplete - выполнен ли критерий
// завершенности предписанной фазы (все не-интерлюдии отвечены).
// Достижение конца списка само по себе фазу не завершает: на последнем
// предписанном индексе без выполненного критерия автомат остается на месте.
func (m *Machine) Advance(prescribedComplete bool) error {
	switch m.state {
	case StatePrescribed:
		if m.index < m.prescribedCount-1 {
			m.index++
			return nil
		}
		if prescribedComplete {
			m.state = StateTransition
		}
		return nil
	case StateDynamic:
		if m.index < m.promptCount-1 {
			m.index++
			return nil
		}
		// Последний промпт батча: не выходим за конец списка.
		m.state = StateTransition
		return nil
	default:
		return fmt.Errorf("%w: advance from %s", models.ErrInvalidTransition, m.state)
	}
}

// Back - шаг назад. Из transition возвращает к последнему динамическому
// батчу (если batchNumber > 0) или к предписанной фазе.
func (m *Machine) Back() error {
	switch m.state {
	case StatePrescribed:
		if m.index > 0 {
			m.index--
		}
		return nil
	case StateDynamic:
		if m.index > 0 {
			m.index--
		}
		if m.index < m.prescribedCount {
			m.state = StatePrescribed
		}
		return nil
	case StateTransition:
		if m.batchNumber > 0 {
			m.state = StateDynamic
			m.index = m.promptCount - 1
		} else {
			m.state = StatePrescribed
			m.index = m.prescribedCount - 1
		}
		return nil
	default:
		return fmt.Errorf("%w: back from %s", models.ErrInvalidTransition, m.state)
	}
}

// RequestBatch переводит transition -> generating. Повторный запрос во время
// генерации невозможен: из generating событие запрещено.
func (m *Machine) RequestBatch() error {
	if m.state != StateTransition {
		return fmt.Errorf("%w: request batch from %s", models.ErrInvalidTransition, m.state)
	}
	m.state = StateGenerating
	return nil
}

// BatchReady фиксирует успешный батч из size вопросов: курсор встает на
// первый новый промпт, номер батча увеличивается.
func (m *Machine) BatchReady(size int) error {
	if m.state != StateGenerating {
		return fmt.Errorf("%w: batch ready in %s", models.ErrInvalidTransition, m.state)
	}
	if size <= 0 {
		return m.BatchFailed()
	}
	m.batchStart = m.promptCount
	m.promptCount += size
	m.index = m.batchStart
	m.batchNumber++
	m.state = StateDynamic
	return nil
}

// BatchFailed возвращает автомат в transition без изменения номера батча.
func (m *Machine) BatchFailed() error {
	if m.state != StateGenerating {
		return fmt.Errorf("%w: batch failed in %s", models.ErrInvalidTransition, m.state)
	}
	m.state = StateTransition
	return nil
}

// Finish - терминальное действие из transition: компиляция профиля и
// генерация доски выполняются уровнем выше.
func (m *Machine) Finish() error {
	if m.state != StateTransition {
		return fmt.Errorf("%w: finish from %s", models.ErrInvalidTransition, m.state)
	}
	m.state = StateComplete
	return nil
}
