//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/platform/postgres"
	"github.com/aimock/aimock-api/internal/store"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	db, terminate, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	_ = db.Close()
	terminate()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (*sql.DB, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "aimock"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, nil, err
	}
	terminate := func() { _ = container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		return nil, nil, err
	}

	dsn := "postgres://postgres:postgres@" + host + ":" + port.Port() + "/aimock?sslmode=disable"
	db, err := postgres.Open(ctx, dsn, slog.Default())
	if err != nil {
		terminate()
		return nil, nil, err
	}

	if err := postgres.Migrate(ctx, db, slog.Default(), postgres.MigrateUp); err != nil {
		_ = db.Close()
		terminate()
		return nil, nil, err
	}
	return db, terminate, nil
}

// withTx runs fn inside a transaction that is always rolled back.
func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := testDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	fn(tx)
}

func newInterview(t *testing.T, userID string) *domain.Interview {
	t.Helper()

	interview, err := domain.NewInterview(userID, domain.InterviewInput{
		Position:    "Backend Engineer",
		Description: "Build reliable payment services",
		Experience:  3,
		TechStack:   "Go, PostgreSQL",
	}, []domain.QARecord{
		{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the Go runtime."},
		{Question: "What does \"ACID\" stand for?", Answer: "Atomicity, consistency, isolation, durability."},
	})
	require.NoError(t, err)
	return interview
}

func newAnswer(t *testing.T, interview *domain.Interview, index int) *domain.UserAnswer {
	t.Helper()

	answer, err := domain.NewUserAnswer(interview.ID, interview.UserID, interview.Questions[index],
		"My answer covers the essentials in detail.",
		domain.Feedback{Rating: 6, Feedback: "Good start, add an example."})
	require.NoError(t, err)
	return answer
}

func TestInterviewStore_CRUD(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresInterviewStore(tx, nil)

		interview := newInterview(t, "user_crud")
		require.NoError(t, s.Create(ctx, interview))

		got, err := s.GetByID(ctx, interview.ID)
		require.NoError(t, err)
		assert.Equal(t, interview.UserID, got.UserID)
		assert.Equal(t, interview.Position, got.Position)
		assert.Equal(t, interview.Questions, got.Questions)
		assert.WithinDuration(t, interview.CreatedAt, got.CreatedAt, time.Millisecond)

		revised := []domain.QARecord{{Question: "Explain channels", Answer: "Typed conduits between goroutines."}}
		require.NoError(t, got.Revise(domain.InterviewInput{
			Position:    "Senior Backend Engineer",
			Description: "Lead the payments platform team",
			Experience:  6,
			TechStack:   "Go, Kafka",
		}, revised))
		require.NoError(t, s.Update(ctx, got))

		updated, err := s.GetByID(ctx, interview.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", updated.Position)
		assert.Equal(t, revised, updated.Questions)

		require.NoError(t, s.Delete(ctx, interview.ID))
		_, err = s.GetByID(ctx, interview.ID)
		assert.ErrorIs(t, err, store.ErrInterviewNotFound)
	})
}

func TestInterviewStore_NotFound(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresInterviewStore(tx, nil)

		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrInterviewNotFound)

		missing := newInterview(t, "user_missing")
		assert.ErrorIs(t, s.Update(ctx, missing), store.ErrInterviewNotFound)
		assert.ErrorIs(t, s.Delete(ctx, missing.ID), store.ErrInterviewNotFound)
	})
}

func TestInterviewStore_ValidationBeforeInsert(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		s := postgres.NewPostgresInterviewStore(tx, nil)

		interview := newInterview(t, "user_invalid")
		interview.Questions = nil
		assert.ErrorIs(t, s.Create(context.Background(), interview), domain.ErrNoQuestions)
	})
}

func TestInterviewStore_ListByUser(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresInterviewStore(tx, nil)

		older := newInterview(t, "user_list")
		older.CreatedAt = older.CreatedAt.Add(-time.Hour)
		newer := newInterview(t, "user_list")
		other := newInterview(t, "someone_else")
		for _, iv := range []*domain.Interview{older, newer, other} {
			require.NoError(t, s.Create(ctx, iv))
		}

		list, err := s.ListByUser(ctx, "user_list")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)

		empty, err := s.ListByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestAnswerStore(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		interviews := postgres.NewPostgresInterviewStore(tx, nil)
		answers := postgres.NewPostgresAnswerStore(tx, nil)

		interview := newInterview(t, "user_answers")
		require.NoError(t, interviews.Create(ctx, interview))

		first := newAnswer(t, interview, 0)
		second := newAnswer(t, interview, 1)
		second.CreatedAt = first.CreatedAt.Add(time.Second)
		require.NoError(t, answers.Create(ctx, first))
		require.NoError(t, answers.Create(ctx, second))

		list, err := answers.ListByInterview(ctx, interview.ID, interview.UserID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.Question, list[1].Question)

		others, err := answers.ListByInterview(ctx, interview.ID, "intruder")
		require.NoError(t, err)
		assert.Empty(t, others)

		got, err := answers.GetByQuestion(ctx, interview.ID, interview.UserID, interview.Questions[1].Question)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		assert.Equal(t, 6, got.Rating)

		_, err = answers.GetByQuestion(ctx, interview.ID, interview.UserID, "never asked")
		assert.ErrorIs(t, err, store.ErrAnswerNotFound)

		removed, err := answers.DeleteByInterview(ctx, interview.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		list, err = answers.ListByInterview(ctx, interview.ID, interview.UserID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestAnswerStore_DuplicateQuestion(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		interviews := postgres.NewPostgresInterviewStore(tx, nil)
		answers := postgres.NewPostgresAnswerStore(tx, nil)

		interview := newInterview(t, "user_duplicate")
		require.NoError(t, interviews.Create(ctx, interview))
		require.NoError(t, answers.Create(ctx, newAnswer(t, interview, 0)))

		err := answers.Create(ctx, newAnswer(t, interview, 0))
		assert.ErrorIs(t, err, store.ErrAnswerExists)
		assert.True(t, store.IsDuplicateError(err))
	})
}

func TestAnswerStore_UnknownInterview(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		answers := postgres.NewPostgresAnswerStore(tx, nil)

		ghost := newInterview(t, "user_ghost")
		err := answers.Create(context.Background(), newAnswer(t, ghost, 0))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestDeleteInterviewCascadesAnswers(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		interviews := postgres.NewPostgresInterviewStore(tx, nil)
		answers := postgres.NewPostgresAnswerStore(tx, nil)

		interview := newInterview(t, "user_cascade")
		require.NoError(t, interviews.Create(ctx, interview))
		require.NoError(t, answers.Create(ctx, newAnswer(t, interview, 0)))

		require.NoError(t, interviews.Delete(ctx, interview.ID))

		list, err := answers.ListByInterview(ctx, interview.ID, interview.UserID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.Background()
	s := postgres.NewPostgresInterviewStore(testDB, nil)

	t.Run("commit", func(t *testing.T) {
		interview := newInterview(t, "user_tx_commit")
		err := store.NewDBTransactor(testDB).WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return s.WithTx(tx).Create(ctx, interview)
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Delete(ctx, interview.ID) })

		_, err = s.GetByID(ctx, interview.ID)
		assert.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		interview := newInterview(t, "user_tx_rollback")
		boom := errors.New("boom")
		err := store.RunInTransaction(ctx, testDB, func(ctx context.Context, tx *sql.Tx) error {
			if err := s.WithTx(tx).Create(ctx, interview); err != nil {
				return err
			}
			return boom
		})
		assert.Same(t, boom, err)

		_, err = s.GetByID(ctx, interview.ID)
		assert.ErrorIs(t, err, store.ErrInterviewNotFound)
	})

	t.Run("rollback on panic", func(t *testing.T) {
		interview := newInterview(t, "user_tx_panic")
		assert.Panics(t, func() {
			_ = store.RunInTransaction(ctx, testDB, func(ctx context.Context, tx *sql.Tx) error {
				if err := s.WithTx(tx).Create(ctx, interview); err != nil {
					return err
				}
				panic("unexpected")
			})
		})

		_, err := s.GetByID(ctx, interview.ID)
		assert.ErrorIs(t, err, store.ErrInterviewNotFound)
	})
}

func TestMigrate_StatusAndUnknownCommand(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, postgres.Migrate(ctx, testDB, slog.Default(), postgres.MigrateStatus))

	err := postgres.Migrate(ctx, testDB, slog.Default(), "sideways")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown migration command"))
}
