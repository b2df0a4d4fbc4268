package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/mmynk/idine/internal/models"
)

// chefsChoice are the dish names featured in the home carousel, in both languages.
var chefsChoice = []string{
	"Penne Carbonara", "Paella Alicante", "Fillet Steak", "Power Muesli", "Tower Burger", "Pesto Farfalle",
	"奶油培根意面", "阿利坎特海鲜饭", "菲力牛排", "能量燕麦粥", "巨无霸汉堡", "青酱蝴蝶面",
}

func isChefsChoice(name string) bool {
	for _, n := range chefsChoice {
		if n == name {
			return true
		}
	}
	return false
}

// Recommendations returns the Chef's Choice items in menu order.
func (c *Catalog) Recommendations() []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.Items() {
		if isChefsChoice(item.Name) {
			out = append(out, item)
		}
	}
	return out
}

// NextIndex advances a carousel position, wrapping at count. It returns 0
// when count is zero so an empty list never divides by zero.
func NextIndex(current, count int) int {
	if count <= 0 {
		return 0
	}
	if current < 0 {
		return 0
	}
	return (current + 1) % count
}

// Carousel rotates through a list of items.
type Carousel struct {
	mu    sync.Mutex
	items []models.MenuItem
	index int
}

// NewCarousel creates a carousel positioned on the first item.
func NewCarousel(items []models.MenuItem) *Carousel {
	return &Carousel{items: append([]models.MenuItem(nil), items...)}
}

// Current returns the focused item, or false if the carousel is empty.
func (c *Carousel) Current() (models.MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return models.MenuItem{}, false
	}
	return c.items[c.index], true
}

// Next advances to the following item and returns it.
func (c *Carousel) Next() (models.MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return models.MenuItem{}, false
	}
	c.index = NextIndex(c.index, len(c.items))
	return c.items[c.index], true
}

// Reset replaces the items, e.g. after a language change, and focuses the first.
func (c *Carousel) Reset(items []models.MenuItem) {
	c.mu.Lock()
	c.items = append([]models.MenuItem(nil), items...)
	c.index = 0
	c.mu.Unlock()
}

// Run calls fn with the next item every interval until ctx is done.
// Ticks on an empty carousel are skipped.
func (c *Carousel) Run(ctx context.Context, interval time.Duration, fn func(models.MenuItem)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if item, ok := c.Next(); ok {
				fn(item)
			}
		}
	}
}
