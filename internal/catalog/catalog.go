// Package catalog loads the read-only menu for a language and answers the
// browsing queries the menu screens need.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mmynk/idine/internal/models"
)

//go:embed menu_en.json menu_zh.json
var resources embed.FS

// Language selects which menu resource is loaded.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"

	// DefaultLanguage is used when no preference has been saved.
	DefaultLanguage = English
)

// AllCategories is the category filter that matches every section.
const AllCategories = "All"

// ParseLanguage validates a stored or requested language value.
// The empty string maps to DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case "":
		return DefaultLanguage, nil
	case English, Chinese:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

func (l Language) resource() string {
	return "menu_" + string(l) + ".json"
}

// Catalog is a decoded menu. It is immutable once built.
type Catalog struct {
	sections []models.MenuSection
	byID     map[string]models.MenuItem
}

// Load decodes the embedded menu for lang.
func Load(lang Language) (*Catalog, error) {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return nil, err
	}
	f, err := resources.Open(lang.resource())
	if err != nil {
		return nil, fmt.Errorf("failed to open menu %s: %w", lang, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode builds a Catalog from a JSON array of sections.
func Decode(r io.Reader) (*Catalog, error) {
	var sections []models.MenuSection
	if err := json.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}
	return New(sections)
}

// New builds a Catalog from already decoded sections. Item IDs must be
// unique and non-empty.
func New(sections []models.MenuSection) (*Catalog, error) {
	c := &Catalog{
		sections: make([]models.MenuSection, len(sections)),
		byID:     make(map[string]models.MenuItem),
	}
	for i, sec := range sections {
		items := make([]models.MenuItem, len(sec.Items))
		for j, item := range sec.Items {
			if item.ID == "" {
				return nil, fmt.Errorf("menu item %q in section %q has no id", item.Name, sec.Name)
			}
			if _, dup := c.byID[item.ID]; dup {
				return nil, fmt.Errorf("duplicate menu item id %s", item.ID)
			}
			if item.Price < 0 || item.Calories < 0 {
				return nil, fmt.Errorf("menu item %s has negative price or calories", item.ID)
			}
			items[j] = item.Clone()
			c.byID[item.ID] = item.Clone()
		}
		c.sections[i] = models.MenuSection{ID: sec.ID, Name: sec.Name, Items: items}
	}
	return c, nil
}

// Sections returns every section in menu order.
func (c *Catalog) Sections() []models.MenuSection {
	return cloneSections(c.sections)
}

// Section returns the sections matching a category filter. AllCategories
// (or "") returns every section; an unknown name returns none.
func (c *Catalog) Section(category string) []models.MenuSection {
	if category == "" || category == AllCategories {
		return c.Sections()
	}
	var out []models.MenuSection
	for _, sec := range c.sections {
		if sec.Name == category {
			out = append(out, sec)
		}
	}
	return cloneSections(out)
}

// Categories returns the filter names: AllCategories followed by the section names.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	for _, sec := range c.sections {
		out = append(out, sec.Name)
	}
	return out
}

// Items returns every item, flattened in menu order.
func (c *Catalog) Items() []models.MenuItem {
	var out []models.MenuItem
	for _, sec := range c.sections {
		for _, item := range sec.Items {
			out = append(out, item.Clone())
		}
	}
	return out
}

// Item looks up an item by ID.
func (c *Catalog) Item(id string) (models.MenuItem, bool) {
	item, ok := c.byID[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return item.Clone(), true
}

// Search returns items whose name or description contains query,
// ignoring case. An empty query matches nothing.
func (c *Catalog) Search(query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.MenuItem
	for _, item := range c.Items() {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.EnglishName), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			out = append(out, item)
		}
	}
	return out
}

func cloneSections(sections []models.MenuSection) []models.MenuSection {
	out := make([]models.MenuSection, len(sections))
	for i, sec := range sections {
		items := make([]models.MenuItem, len(sec.Items))
		for j, item := range sec.Items {
			items[j] = item.Clone()
		}
		out[i] = models.MenuSection{ID: sec.ID, Name: sec.Name, Items: items}
	}
	return out
}

// Loader caches one decoded Catalog per language.
type Loader struct {
	mu    sync.Mutex
	cache map[Language]*Catalog
	load  func(Language) (*Catalog, error)
}

// NewLoader returns a Loader over the embedded resources.
func NewLoader() *Loader {
	return &Loader{cache: make(map[Language]*Catalog), load: Load}
}

// Get returns the catalog for lang, decoding it on first use.
func (l *Loader) Get(lang Language) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cache[lang]; ok {
		return c, nil
	}
	c, err := l.load(lang)
	if err != nil {
		return nil, err
	}
	l.cache[lang] = c
	return c, nil
}
