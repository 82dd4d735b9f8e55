package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"visionboard-server/internal/models"
	"visionboard-server/internal/repository"
	"visionboard-server/migrations"
	"visionboard-server/pkg/migration"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// RepositoryIntegrationSuite поднимает реальные Postgres и Redis в
// контейнерах и прогоняет репозитории против них.
type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	journals    repository.JournalRepository
	boards      repository.BoardRepository
	tracker     repository.GenerationTracker
	logger      *zap.Logger
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, s.pgPool, s.logger)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to run migrations")

	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})

	s.journals = repository.NewPgJournalRepository(s.pgPool, s.logger)
	s.boards = repository.NewPgBoardRepository(s.pgPool, s.logger)
	s.tracker = repository.NewRedisGenerationTracker(s.redisClient, s.logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.rdContainer != nil {
		_ = s.rdContainer.Terminate(s.ctx)
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *RepositoryIntegrationSuite) TestJournalRoundTrip() {
	journal := models.NewJournal("Integration Vision")
	journal.SaveResponse(models.JournalResponse{
		PromptID:  "year-word",
		Question:  "Your word?",
		Answer:    "Momentum",
		Category:  models.CategoryYear,
		Timestamp: time.Now(),
	})

	s.Require().NoError(s.journals.Create(s.ctx, journal))

	loaded, err := s.journals.GetByID(s.ctx, journal.ID)
	s.Require().NoError(err)
	s.Equal(journal.ID, loaded.ID)
	s.Require().Len(loaded.Responses, 1)
	s.Equal("Momentum", loaded.Responses[0].Answer)

	loaded.SaveResponse(models.JournalResponse{PromptID: "year-word", Question: "Your word?", Answer: "Focus"})
	s.Require().NoError(s.journals.Update(s.ctx, loaded))

	reloaded, err := s.journals.GetByID(s.ctx, loaded.ID)
	s.Require().NoError(err)
	s.Require().Len(reloaded.Responses, 1)
	s.Equal("Focus", reloaded.Responses[0].Answer)

	list, err := s.journals.List(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(list)
}

func (s *RepositoryIntegrationSuite) TestJournalNotFound() {
	_, err := s.journals.GetByID(s.ctx, uuid.New())
	s.True(errors.Is(err, models.ErrNotFound))

	ghost := models.NewJournal("Ghost")
	err = s.journals.Update(s.ctx, ghost)
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *RepositoryIntegrationSuite) TestBoardRoundTrip() {
	board := models.NewBoard(uuid.New(), "Integration Board")
	board.Canvas.Elements = append(board.Canvas.Elements, models.CanvasElement{
		ID:   uuid.New(),
		Type: "image",
		Size: models.Size{Width: 350, Height: 280},
		Data: models.ImageData{Prompt: "zen garden", Style: "minimalist", Status: models.StatusPending},
	})

	s.Require().NoError(s.boards.Create(s.ctx, board))

	loaded, err := s.boards.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal("#0D0D0D", loaded.Canvas.Background.Value)
	s.Require().Len(loaded.Canvas.Elements, 1)
	s.Equal(models.StatusPending, loaded.Canvas.Elements[0].Data.Status)

	s.Require().NoError(loaded.AddVersion("before edits"))
	s.Require().NoError(s.boards.Update(s.ctx, loaded))

	reloaded, err := s.boards.GetByID(s.ctx, loaded.ID)
	s.Require().NoError(err)
	s.Len(reloaded.Versions, 1)
}

func (s *RepositoryIntegrationSuite) TestGenerationTracker() {
	elementID := uuid.New()

	acquired, err := s.tracker.Acquire(s.ctx, elementID)
	s.Require().NoError(err)
	s.True(acquired)

	// Повторный захват того же элемента отклоняется.
	again, err := s.tracker.Acquire(s.ctx, elementID)
	s.Require().NoError(err)
	s.False(again)

	// Другой элемент захватывается независимо.
	other, err := s.tracker.Acquire(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.True(other)

	s.Require().NoError(s.tracker.Release(s.ctx, elementID))
	released, err := s.tracker.Acquire(s.ctx, elementID)
	s.Require().NoError(err)
	s.True(released)
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationSuite))
}
