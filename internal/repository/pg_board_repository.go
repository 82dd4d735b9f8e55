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
var _ BoardRepository = (*pgBoardRepository)(nil)

type pgBoardRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgBoardRepository создает Postgres-реализацию BoardRepository.
func NewPgBoardRepository(db DBTX, logger *zap.Logger) BoardRepository {
	return &pgBoardRepository{
		db:     db,
		logger: logger.Named("PgBoardRepo"),
	}
}

func (r *pgBoardRepository) Create(ctx context.Context, board *models.Board) error {
	query := `
        INSERT INTO boards (id, journal_id, doc, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	logFields := []zap.Field{
		zap.String("boardID", board.ID.String()),
		zap.String("journalID", board.JournalID.String()),
	}
	r.logger.Debug("Creating board", logFields...)

	doc, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("ошибка сериализации доски: %w", err)
	}
	_, err = r.db.Exec(ctx, query, board.ID, board.JournalID, doc, board.CreatedAt, board.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create board", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка создания доски: %w", err)
	}
	r.logger.Info("Board created", logFields...)
	return nil
}

func (r *pgBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	query := `SELECT doc FROM boards WHERE id = $1`
	logFields := []zap.Field{zap.String("boardID", id.String())}

	var doc []byte
	err := pgxscan.Get(ctx, r.db, &doc, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Board not found", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get board", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("ошибка получения доски %s: %w", id, err)
	}

	var board models.Board
	if err := json.Unmarshal(doc, &board); err != nil {
		r.logger.Error("Failed to unmarshal board doc", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("поврежденный документ доски %s: %w", id, err)
	}
	return &board, nil
}

func (r *pgBoardRepository) Update(ctx context.Context, board *models.Board) error {
	query := `UPDATE boards SET doc = $2, updated_at = $3 WHERE id = $1`
	logFields := []zap.Field{zap.String("boardID", board.ID.String())}

	board.UpdatedAt = time.Now()
	doc, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("ошибка сериализации доски: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, board.ID, doc, board.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update board", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка обновления доски %s: %w", board.ID, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Board not found on update", logFields...)
		return models.ErrNotFound
	}
	r.logger.Debug("Board updated", logFields...)
	return nil
}

func (r *pgBoardRepository) List(ctx context.Context) ([]models.Board, error) {
	query := `SELECT doc FROM boards ORDER BY updated_at DESC`

	var docs [][]byte
	if err := pgxscan.Select(ctx, r.db, &docs, query); err != nil {
		r.logger.Error("Failed to list boards", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка досок: %w", err)
	}

	boards := make([]models.Board, 0, len(docs))
	for _, doc := range docs {
		var board models.Board
		if err := json.Unmarshal(doc, &board); err != nil {
			r.logger.Error("Failed to unmarshal board doc in list", zap.Error(err))
			return nil, fmt.Errorf("поврежденный документ доски в списке: %w", err)
		}
		boards = append(boards, board)
	}
	return boards, nil
}
