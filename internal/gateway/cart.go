package gateway

import (
	"sync"

	"github.com/avc/maya-storefront/internal/domain"
)

// CartStore хранит товары, ожидающие оплаты
type CartStore struct {
	mu    sync.RWMutex
	items []domain.CartItem
}

// NewCartStore создает пустую корзину
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Add добавляет товар. Повторы допускаются.
func (c *CartStore) Add(item domain.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Remove удаляет все товары с указанным id и возвращает их количество
func (c *CartStore) Remove(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.ID == id {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept

	return removed
}

// Items возвращает копию содержимого корзины
func (c *CartStore) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.CartItem{}, c.items...)
}

// Count возвращает количество товаров
func (c *CartStore) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Total возвращает сумму цен товаров на текущий момент
func (c *CartStore) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cartTotal(c.items)
}

// View возвращает товары, количество и сумму по одному снимку корзины
func (c *CartStore) View() domain.CartView {
	items := c.Items()
	return domain.CartView{Items: items, Count: len(items), Total: cartTotal(items)}
}

func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// Clear очищает корзину
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
