package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visionboard-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ JournalRepository = (*pgJournalRepository)(nil)

type pgJournalRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgJournalRepository создает Postgres-реализацию JournalRepository.
// Журнал хранится как JSONB-документ, колонки времени - для сортировки.
func NewPgJournalRepository(db DBTX, logger *zap.Logger) JournalRepository {
	return &pgJournalRepository{
		db:     db,
		logger: logger.Named("PgJournalRepo"),
	}
}

func (r *pgJournalRepository) Create(ctx context.Context, journal *models.Journal) error {
	query := `
        INSERT INTO journals (id, doc, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
    `
	logFields := []zap.Field{zap.String("journalID", journal.ID.String())}
	r.logger.Debug("Creating journal", logFields...)

	doc, err := json.Marshal(journal)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала: %w", err)
	}
	_, err = r.db.Exec(ctx, query, journal.ID, doc, journal.CreatedAt, journal.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create journal", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка создания журнала: %w", err)
	}
	r.logger.Info("Journal created", logFields...)
	return nil
}

func (r *pgJournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Journal, error) {
	query := `SELECT doc FROM journals WHERE id = $1`
	logFields := []zap.Field{zap.String("journalID", id.String())}

	var doc []byte
	err := pgxscan.Get(ctx, r.db, &doc, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Journal not found", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get journal", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("ошибка получения журнала %s: %w", id, err)
	}

	var journal models.Journal
	if err := json.Unmarshal(doc, &journal); err != nil {
		r.logger.Error("Failed to unmarshal journal doc", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("поврежденный документ журнала %s: %w", id, err)
	}
	return &journal, nil
}

func (r *pgJournalRepository) Update(ctx context.Context, journal *models.Journal) error {
	query := `UPDATE journals SET doc = $2, updated_at = $3 WHERE id = $1`
	logFields := []zap.Field{zap.String("journalID", journal.ID.String())}

	journal.UpdatedAt = time.Now()
	doc, err := json.Marshal(journal)
	if err != nil {
		return fmt.Errorf("ошибка сериализации журнала: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, journal.ID, doc, journal.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update journal", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка обновления журнала %s: %w", journal.ID, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Journal not found on update", logFields...)
		return models.ErrNotFound
	}
	r.logger.Debug("Journal updated", logFields...)
	return nil
}

func (r *pgJournalRepository) List(ctx context.Context) ([]models.Journal, error) {
	query := `SELECT doc FROM journals ORDER BY updated_at DESC`

	var docs [][]byte
	if err := pgxscan.Select(ctx, r.db, &docs, query); err != nil {
		r.logger.Error("Failed to list journals", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка журналов: %w", err)
	}

	journals := make([]models.Journal, 0, len(docs))
	for _, doc := range docs {
		var journal models.Journal
		if err := json.Unmarshal(doc, &journal); err != nil {
			r.logger.Error("Failed to unmarshal journal doc in list", zap.Error(err))
			return nil, fmt.Errorf("поврежденный документ журнала в списке: %w", err)
		}
		journals = append(journals, journal)
	}
	return journals, nil
}
