// Package repository - доступ к хранилищу журналов и досок.
// Ядро зависит только от интерфейсов; конкретные реализации (Postgres,
// Redis) подставляются при сборке, моки - в тестах.
package repository

import (
	"context"

	"visionboard-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - минимальный контракт пула соединений Postgres.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// JournalRepository - keyed-хранилище журналов.
// Update перезаписывает документ целиком и неявно обновляет updatedAt.
type JournalRepository interface {
	Create(ctx context.Context, journal *models.Journal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Journal, error)
	Update(ctx context.Context, journal *models.Journal) error
	List(ctx context.Context) ([]models.Journal, error)
}

// BoardRepository - keyed-хранилище досок.
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	List(ctx context.Context) ([]models.Board, error)
}

// GenerationTracker отслеживает элементы с запущенной генерацией
// изображения, чтобы исключить параллельную регенерацию одного элемента.
// Разные элементы могут генерироваться одновременно.
type GenerationTracker interface {
	// Acquire помечает элемент как генерирующийся; false - уже в работе.
	Acquire(ctx context.Context, elementID uuid.UUID) (bool, error)
	// Release снимает пометку независимо от исхода генерации.
	Release(ctx context.Context, elementID uuid.UUID) error
}
