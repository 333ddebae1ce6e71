package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepositoriesAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()
	requireDocker(t)

	db := startPostgres(t, ctx)
	require.NoError(t, db.AutoMigrate(&model.Subject{}, &model.Question{}, &model.Test{}))

	questions := NewQuestionRepository(db)
	subjects := NewSubjectRepository(db)
	tests := NewTestRepository(db)

	math := &model.Subject{Name: "Math"}
	require.NoError(t, subjects.Create(ctx, math))

	q := &model.Question{
		Description: "What is 2 + 2?",
		Alternatives: model.Alternatives{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
		},
		SubjectIDs: model.IDList{math.ID},
		TestTitle:  "Arithmetic",
	}
	require.NoError(t, questions.Create(ctx, q))

	t.Run("round trip", func(t *testing.T) {
		found, err := questions.FindByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, q.Description, found.Description)
		assert.Equal(t, q.Alternatives, found.Alternatives)
		assert.Equal(t, model.IDList{math.ID}, found.SubjectIDs)
	})

	t.Run("find by subject uses jsonb containment", func(t *testing.T) {
		found, err := questions.FindBySubject(ctx, math.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)

		none, err := questions.FindBySubject(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find by test title", func(t *testing.T) {
		found, err := questions.FindByTestTitle(ctx, "Arithmetic")
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("populate keeps order", func(t *testing.T) {
		found, err := subjects.FindByIDs(ctx, []uuid.UUID{uuid.New(), math.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Math", found[0].Name)
	})

	t.Run("mutate under lock", func(t *testing.T) {
		updated, err := questions.Mutate(ctx, q.ID, func(question *model.Question) error {
			question.Description = "What is 3 + 3?"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "What is 3 + 3?", updated.Description)
		assert.Equal(t, q.Alternatives, updated.Alternatives)

		_, err = questions.Mutate(ctx, uuid.New(), func(*model.Question) error { return nil })
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("passcode is unique", func(t *testing.T) {
		require.NoError(t, tests.Create(ctx, &model.Test{Title: "Arithmetic", Passcode: "ABC123", QuestionIDs: model.IDList{q.ID}}))
		err := tests.Create(ctx, &model.Test{Title: "Other", Passcode: "ABC123"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("delete cleans test references", func(t *testing.T) {
		require.NoError(t, questions.Delete(ctx, q.ID))
		assert.ErrorIs(t, questions.Delete(ctx, q.ID), apperrors.ErrNotFound)

		touched, err := tests.RemoveQuestion(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), touched)

		test, err := tests.FindByPasscode(ctx, "ABC123")
		require.NoError(t, err)
		assert.Empty(t, test.QuestionIDs)
	})
}

func startPostgres(t *testing.T, ctx context.Context) *gorm.DB {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
