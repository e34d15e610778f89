package gateway

import (
	"sync"

	"github.com/avc/maya-storefront/internal/domain"
)

// SessionStore хранит состояние аутентификации витрины
type SessionStore struct {
	mu       sync.RWMutex
	identity *domain.Identity
}

// NewSessionStore создает пустую сессию
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Current возвращает копию текущей сессии
func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return domain.Session{}
	}

	identity := *s.identity
	return domain.Session{Authenticated: true, Identity: &identity}
}

// Authenticated сообщает, вошел ли пользователь
func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Authenticate запоминает личность вошедшего пользователя
func (s *SessionStore) Authenticate(identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
}

// Clear сбрасывает сессию
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}
