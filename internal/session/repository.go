package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/baba/internal/store"
)

// ErrNotFound is returned by Repository.Get for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Repository loads and stores conversation sessions by ID.
type Repository interface {
	Get(ctx context.Context, id string) (*ConversationSession, error)
	Save(ctx context.Context, s *ConversationSession) error
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps sessions in process memory. Get returns a copy so
// callers cannot mutate stored state without Save.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*ConversationSession, error) {
	r.mu.RLock()
	data, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

func (r *MemoryRepository) Save(_ context.Context, s *ConversationSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	r.mu.Lock()
	r.sessions[s.ID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// RecordRepository stores sessions as JSON through a store backend
// (sqlite or redis).
type RecordRepository struct {
	records store.SessionRecords
}

var _ Repository = (*RecordRepository)(nil)

// NewRecordRepository wraps a store backend.
func NewRecordRepository(records store.SessionRecords) *RecordRepository {
	return &RecordRepository{records: records}
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*ConversationSession, error) {
	rec, err := r.records.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return Decode(rec.Data)
}

func (r *RecordRepository) Save(ctx context.Context, s *ConversationSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	rec := store.SessionRecord{
		ID:        s.ID,
		Data:      data,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if err := r.records.SaveSession(ctx, rec); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	if err := r.records.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Decode parses a stored session.
func Decode(data []byte) (*ConversationSession, error) {
	var s ConversationSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.QuizHistory == nil {
		s.QuizHistory = []QuizAttempt{}
	}
	return &s, nil
}

// GetOrCreate loads id, creating and saving an empty session if it does
// not exist yet.
func GetOrCreate(ctx context.Context, repo Repository, id string) (*ConversationSession, error) {
	s, err := repo.Get(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	s = New(id)
	if err := repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
