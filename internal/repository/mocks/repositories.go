package mocks

import (
	"context"

	"visionboard-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock JournalRepository
type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Create(ctx context.Context, journal *models.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journal), args.Error(1)
}

func (m *JournalRepository) Update(ctx context.Context, journal *models.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *JournalRepository) List(ctx context.Context) ([]models.Journal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

// Mock BoardRepository
type BoardRepository struct {
	mock.Mock
}

func (m *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *BoardRepository) Update(ctx context.Context, board *models.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *BoardRepository) List(ctx context.Context) ([]models.Board, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Board), args.Error(1)
}

// Mock GenerationTracker
type GenerationTracker struct {
	mock.Mock
}

func (m *GenerationTracker) Acquire(ctx context.Context, elementID uuid.UUID) (bool, error) {
	args := m.Called(ctx, elementID)
	return args.Bool(0), args.Error(1)
}

func (m *GenerationTracker) Release(ctx context.Context, elementID uuid.UUID) error {
	args := m.Called(ctx, elementID)
	return args.Error(0)
}
