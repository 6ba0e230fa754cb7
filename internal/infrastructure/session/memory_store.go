// Package session almacena las sesiones del asistente virtual:
// en memoria del proceso o en Redis cuando hay varias réplicas.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.ChatSessionRepository = (*MemoryStore)(nil)

// MemoryStore sesiones en un map protegido por mutex.
// Una sesión sin actividad durante ttl se considera expirada (ttl 0 = sin expiración).
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.ChatSession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore construye el almacén. now nil = time.Now.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{sessions: make(map[string]*entity.ChatSession), ttl: ttl, now: now}
}

// Get devuelve una copia de la sesión para que el llamador no comparta el slice interno.
func (s *MemoryStore) Get(_ context.Context, id string) (*entity.ChatSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(sess) {
		s.mu.Lock()
		defer s.mu.Unlock()
		// un Save concurrente pudo reemplazarla entre ambos locks
		current, ok := s.sessions[id]
		if ok && !s.expired(current) {
			return clone(current), nil
		}
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return clone(sess), nil
}

func (s *MemoryStore) Save(_ context.Context, sess *entity.ChatSession) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = clone(sess)
	s.evictExpiredLocked()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) expired(sess *entity.ChatSession) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func (s *MemoryStore) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}

func clone(sess *entity.ChatSession) *entity.ChatSession {
	cp := *sess
	cp.Messages = append([]entity.ChatMessage(nil), sess.Messages...)
	return &cp
}
