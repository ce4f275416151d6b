package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/store"
)

// MockInterviewStore implements store.InterviewStore with an in-memory map.
// Function fields override the default behavior.
type MockInterviewStore struct {
	CreateFn     func(ctx context.Context, interview *domain.Interview) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Interview, error)
	UpdateFn     func(ctx context.Context, interview *domain.Interview) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	ListByUserFn func(ctx context.Context, userID string) ([]*domain.Interview, error)

	mu         sync.Mutex
	Interviews map[uuid.UUID]*domain.Interview
}

var _ store.InterviewStore = (*MockInterviewStore)(nil)

// NewMockInterviewStore creates an empty store. Passed interviews are preloaded.
func NewMockInterviewStore(interviews ...*domain.Interview) *MockInterviewStore {
	m := &MockInterviewStore{Interviews: make(map[uuid.UUID]*domain.Interview)}
	for _, iv := range interviews {
		m.Interviews[iv.ID] = iv
	}
	return m
}

// Create implements store.InterviewStore
func (m *MockInterviewStore) Create(ctx context.Context, interview *domain.Interview) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, interview)
	}
	if err := interview.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Interviews[interview.ID]; exists {
		return store.ErrDuplicate
	}
	copied := *interview
	m.Interviews[interview.ID] = &copied
	return nil
}

// GetByID implements store.InterviewStore
func (m *MockInterviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.Interviews[id]
	if !ok {
		return nil, store.ErrInterviewNotFound
	}
	copied := *iv
	return &copied, nil
}

// Update implements store.InterviewStore
func (m *MockInterviewStore) Update(ctx context.Context, interview *domain.Interview) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, interview)
	}
	if err := interview.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Interviews[interview.ID]; !ok {
		return store.ErrInterviewNotFound
	}
	copied := *interview
	m.Interviews[interview.ID] = &copied
	return nil
}

// Delete implements store.InterviewStore
func (m *MockInterviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Interviews[id]; !ok {
		return store.ErrInterviewNotFound
	}
	delete(m.Interviews, id)
	return nil
}

// ListByUser implements store.InterviewStore
func (m *MockInterviewStore) ListByUser(ctx context.Context, userID string) ([]*domain.Interview, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*domain.Interview{}
	for _, iv := range m.Interviews {
		if iv.UserID == userID {
			copied := *iv
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// WithTx implements store.InterviewStore. The mock ignores transactions.
func (m *MockInterviewStore) WithTx(*sql.Tx) store.InterviewStore {
	return m
}

// MockAnswerStore implements store.AnswerStore with an in-memory slice.
// Function fields override the default behavior.
type MockAnswerStore struct {
	CreateFn            func(ctx context.Context, answer *domain.UserAnswer) error
	ListByInterviewFn   func(ctx context.Context, interviewID uuid.UUID, userID string) ([]*domain.UserAnswer, error)
	GetByQuestionFn     func(ctx context.Context, interviewID uuid.UUID, userID, question string) (*domain.UserAnswer, error)
	DeleteByInterviewFn func(ctx context.Context, interviewID uuid.UUID) (int64, error)

	mu      sync.Mutex
	Answers []*domain.UserAnswer
}

var _ store.AnswerStore = (*MockAnswerStore)(nil)

// NewMockAnswerStore creates a store preloaded with answers.
func NewMockAnswerStore(answers ...*domain.UserAnswer) *MockAnswerStore {
	return &MockAnswerStore{Answers: answers}
}

// Create implements store.AnswerStore
func (m *MockAnswerStore) Create(ctx context.Context, answer *domain.UserAnswer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, answer)
	}
	if err := answer.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Answers {
		if a.InterviewID == answer.InterviewID && a.UserID == answer.UserID && a.Question == answer.Question {
			return store.ErrAnswerExists
		}
	}
	copied := *answer
	m.Answers = append(m.Answers, &copied)
	return nil
}

// ListByInterview implements store.AnswerStore
func (m *MockAnswerStore) ListByInterview(
	ctx context.Context,
	interviewID uuid.UUID,
	userID string,
) ([]*domain.UserAnswer, error) {
	if m.ListByInterviewFn != nil {
		return m.ListByInterviewFn(ctx, interviewID, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	list := []*domain.UserAnswer{}
	for _, a := range m.Answers {
		if a.InterviewID == interviewID && a.UserID == userID {
			copied := *a
			list = append(list, &copied)
		}
	}
	return list, nil
}

// GetByQuestion implements store.AnswerStore
func (m *MockAnswerStore) GetByQuestion(
	ctx context.Context,
	interviewID uuid.UUID,
	userID, question string,
) (*domain.UserAnswer, error) {
	if m.GetByQuestionFn != nil {
		return m.GetByQuestionFn(ctx, interviewID, userID, question)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Answers {
		if a.InterviewID == interviewID && a.UserID == userID && a.Question == question {
			copied := *a
			return &copied, nil
		}
	}
	return nil, store.ErrAnswerNotFound
}

// DeleteByInterview implements store.AnswerStore
func (m *MockAnswerStore) DeleteByInterview(ctx context.Context, interviewID uuid.UUID) (int64, error) {
	if m.DeleteByInterviewFn != nil {
		return m.DeleteByInterviewFn(ctx, interviewID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Answers[:0]
	var removed int64
	for _, a := range m.Answers {
		if a.InterviewID == interviewID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	m.Answers = kept
	return removed, nil
}

// WithTx implements store.AnswerStore. The mock ignores transactions.
func (m *MockAnswerStore) WithTx(*sql.Tx) store.AnswerStore {
	return m
}

// Count returns the number of stored answers.
func (m *MockAnswerStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Answers)
}

// MockTransactor implements store.Transactor by calling fn with a nil
// transaction. Mock stores ignore the transaction they are given.
type MockTransactor struct {
	WithinTxFn func(ctx context.Context, fn store.TxFn) error

	mu    sync.Mutex
	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements store.Transactor
func (m *MockTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
