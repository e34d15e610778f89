package gateway

import (
	"encoding/json"
	"sync"

	"github.com/avc/maya-storefront/internal/domain"
)

// ModalRouter отслеживает единственное открытое окно.
// Открытие нового окна молча заменяет текущее.
type ModalRouter struct {
	mu     sync.RWMutex
	target domain.ModalTarget
}

// NewModalRouter создает роутер без открытых окон
func NewModalRouter() *ModalRouter {
	return &ModalRouter{target: domain.ModalTarget{Kind: domain.ModalNone}}
}

// Open открывает окно с данными
func (m *ModalRouter) Open(kind domain.ModalKind, data json.RawMessage) {
	if kind == domain.ModalNone || kind == "" {
		m.Close()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = domain.ModalTarget{Kind: kind, Data: append(json.RawMessage(nil), data...)}
}

// Close закрывает текущее окно
func (m *ModalRouter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = domain.ModalTarget{Kind: domain.ModalNone}
}

// Current возвращает текущее окно
func (m *ModalRouter) Current() domain.ModalTarget {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target := m.target
	target.Data = append(json.RawMessage(nil), target.Data...)
	return target
}
