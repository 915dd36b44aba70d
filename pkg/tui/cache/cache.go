// Package cache holds the in-memory catalog snapshot backing the TUI. State
// lives locally, mutations announce themselves on an event channel, and
// consumers read consistent snapshots without hitting the gateway.
package cache

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/tui/events"
)

// Snapshot exposes the current cached state.
type Snapshot struct {
	Categories []catalog.Category
	Products   []catalog.Product
}

// Cache maintains the fetched categories and products and emits typed events
// when a refresh is requested.
type Cache struct {
	component events.ComponentID

	mu         sync.RWMutex
	categories []catalog.Category
	products   []catalog.Product

	eventCh chan tea.Msg
}

// New creates an empty cache that will emit events using the provided
// ComponentID (falls back to "cache" if empty).
func New(component events.ComponentID) *Cache {
	if component == "" {
		component = events.ComponentID("cache")
	}
	return &Cache{
		component: component,
		eventCh:   make(chan tea.Msg, 16),
	}
}

// Events exposes the cache event channel for Bubble Tea subscriptions.
func (c *Cache) Events() <-chan tea.Msg {
	return c.eventCh
}

// SetCatalog replaces the cached state with a fresh fetch result.
func (c *Cache) SetCatalog(categories []catalog.Category, products []catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = append([]catalog.Category(nil), categories...)
	c.products = append([]catalog.Product(nil), products...)
}

// Snapshot returns a copy of the current catalog. The returned data should be
// treated as immutable by callers.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Categories: append([]catalog.Category(nil), c.categories...),
		Products:   append([]catalog.Product(nil), c.products...),
	}
}

// ProductsIn returns the cached products belonging to the named category.
func (c *Cache) ProductsIn(categoryName string) []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Product, 0, len(c.products))
	for _, p := range c.products {
		if categoryName == "" || p.Category.CategoryName == categoryName {
			out = append(out, p)
		}
	}
	return out
}

// RequestRefresh queues a refresh event. Workflow hooks call this after every
// successful mutation. A full channel already has a refresh pending, so the
// send may drop.
func (c *Cache) RequestRefresh() {
	select {
	case c.eventCh <- events.RefreshRequestMsg{Component: c.component}:
	default:
	}
}
