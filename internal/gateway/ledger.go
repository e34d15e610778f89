package gateway

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
)

// Ledger хранит историю подтвержденных действий по разделам и общую сумму.
// Только добавление: записи не изменяются и не удаляются.
type Ledger struct {
	mu         sync.RWMutex
	entries    map[domain.LedgerCategory][]domain.LedgerEntry
	totalSpent float64
}

// NewLedger создает пустую историю
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[domain.LedgerCategory][]domain.LedgerEntry, 4),
	}
}

// Append добавляет запись в раздел и увеличивает общую сумму.
// Обе операции выполняются под одной блокировкой.
func (l *Ledger) Append(entry domain.LedgerEntry) {
	entry.Payload = entry.Payload.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[entry.Category] = append(l.entries[entry.Category], entry)
	l.totalSpent += entry.Total
}

// TotalSpent возвращает общую сумму всех записей
func (l *Ledger) TotalSpent() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSpent
}

// Snapshot возвращает копию истории
func (l *Ledger) Snapshot() domain.LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return domain.LedgerSnapshot{
		Hotels:      l.copyCategory(domain.LedgerCategoryHotels),
		Restaurants: l.copyCategory(domain.LedgerCategoryRestaurants),
		Experiences: l.copyCategory(domain.LedgerCategoryExperiences),
		Purchases:   l.copyCategory(domain.LedgerCategoryPurchases),
		TotalSpent:  l.totalSpent,
	}
}

func (l *Ledger) copyCategory(category domain.LedgerCategory) []domain.LedgerEntry {
	src := l.entries[category]
	out := make([]domain.LedgerEntry, len(src))
	for i, entry := range src {
		entry.Payload = entry.Payload.Clone()
		out[i] = entry
	}
	return out
}

// LedgerBook хранит истории всех аккаунтов в течение жизни процесса
type LedgerBook struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewLedgerBook создает пустой набор историй
func NewLedgerBook() *LedgerBook {
	return &LedgerBook{ledgers: make(map[string]*Ledger)}
}

// For возвращает историю аккаунта, создавая ее при первом обращении
func (b *LedgerBook) For(account string) *Ledger {
	b.mu.Lock()
	defer b.mu.Unlock()

	ledger, ok := b.ledgers[account]
	if !ok {
		ledger = NewLedger()
		b.ledgers[account] = ledger
	}
	return ledger
}

// AccountKey возвращает ключ истории для личности пользователя
func AccountKey(identity domain.Identity) string {
	return strings.ToLower(strings.TrimSpace(identity.Email))
}

// IDGenerator выдает идентификаторы записей из времени создания в миллисекундах.
// Значения строго возрастают, поэтому записи в одну миллисекунду не совпадают.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator создает генератор идентификаторов
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next возвращает новый идентификатор для раздела
func (g *IDGenerator) Next(category domain.LedgerCategory, now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return category.IDPrefix() + strconv.FormatInt(ms, 10)
}
