package storage

import (
	"context"
	"database/sql"
	"sync"

	"legalize-docs/internal/domain"
)

// MemoryStore backs requests and contact messages when no database is
// configured. Lookups of unknown IDs return sql.ErrNoRows like the Postgres
// store does.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string]domain.RequestRecord
	audit    map[string][]domain.AuditState
	contacts []domain.ContactMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[string]domain.RequestRecord),
		audit:    make(map[string][]domain.AuditState),
	}
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) CreateRequest(_ context.Context, req domain.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; ok {
		return nil
	}
	m.requests[req.ID] = domain.RequestRecord{
		ID:          req.ID,
		ServiceID:   req.ServiceID,
		Form:        req.Form,
		File:        req.File,
		TotalCents:  req.Summary.TotalCents,
		Status:      domain.StatusSubmitted,
		SubmittedAt: req.SubmittedAt,
	}
	return nil
}

func (m *MemoryStore) UpdateRequestStatus(_ context.Context, requestID string, status domain.RequestStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.requests[requestID]
	if !ok {
		return sql.ErrNoRows
	}
	rec.Status = status
	m.requests[requestID] = rec
	return nil
}

func (m *MemoryStore) GetRequest(_ context.Context, requestID string) (domain.RequestRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.requests[requestID]
	if !ok {
		return domain.RequestRecord{}, sql.ErrNoRows
	}
	return rec, nil
}

func (m *MemoryStore) InsertAudit(_ context.Context, requestID string, state domain.AuditState, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit[requestID] = append(m.audit[requestID], state)
	return nil
}

func (m *MemoryStore) AuditTrail(requestID string) []domain.AuditState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditState(nil), m.audit[requestID]...)
}

func (m *MemoryStore) SaveContactMessage(_ context.Context, msg domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, msg)
	return nil
}

func (m *MemoryStore) ContactMessages() []domain.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ContactMessage(nil), m.contacts...)
}
