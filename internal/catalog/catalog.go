// Package catalog holds the read-only content behind the interactive
// surfaces: showcase tabs and their examples, the FAQ, and the static
// marketing blocks.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/unicode/norm"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Category labels a group of items. All matches every item.
type Category string

// All is the filter value that matches every category.
const All Category = "All"

// ItemID identifies an item within its list.
type ItemID string

// Item is one immutable catalog entry: a showcase example or a FAQ entry.
// RenderSpec is opaque to the engine; the views read it as a class list or
// icon name.
type Item struct {
	ID         ItemID   `mapstructure:"id"`
	Category   Category `mapstructure:"category"`
	Title      string   `mapstructure:"title"`
	Body       string   `mapstructure:"body"`
	RenderSpec string   `mapstructure:"render"`
}

// Tab is a showcase category button.
type Tab struct {
	ID          Category `mapstructure:"id"`
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Color       string   `mapstructure:"color"`
}

type Feature struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Gradient    string `mapstructure:"gradient"`
}

type Template struct {
	Title     string  `mapstructure:"title"`
	Category  string  `mapstructure:"category"`
	Rating    float64 `mapstructure:"rating"`
	Downloads string  `mapstructure:"downloads"`
	Gradient  string  `mapstructure:"gradient"`
}

type Testimonial struct {
	Name    string `mapstructure:"name"`
	Role    string `mapstructure:"role"`
	Company string `mapstructure:"company"`
	Content string `mapstructure:"content"`
	Rating  int    `mapstructure:"rating"`
}

type Stat struct {
	Value string `mapstructure:"value"`
	Label string `mapstructure:"label"`
}

// Catalog is the whole content set.
type Catalog struct {
	Tabs          []Tab         `mapstructure:"tabs"`
	Examples      []Item        `mapstructure:"examples"`
	FAQCategories []Category    `mapstructure:"faq_categories"`
	FAQ           []Item        `mapstructure:"faq"`
	Features      []Feature     `mapstructure:"features"`
	Templates     []Template    `mapstructure:"templates"`
	Testimonials  []Testimonial `mapstructure:"testimonials"`
	Stats         []Stat        `mapstructure:"stats"`
}

var ErrInvalid = errors.New("invalid catalog")

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultYAML)); err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return decode(v)
}

// Load reads a catalog file. The format follows the file extension.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Catalog, error) {
	var c Catalog
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalize puts labels in NFC so a category typed with combining marks in
// one place still matches the precomposed form elsewhere.
func (c *Catalog) normalize() {
	for i := range c.Tabs {
		c.Tabs[i].ID = Category(clean(string(c.Tabs[i].ID)))
	}
	for i := range c.FAQCategories {
		c.FAQCategories[i] = Category(clean(string(c.FAQCategories[i])))
	}
	for _, items := range [][]Item{c.Examples, c.FAQ} {
		for i := range items {
			items[i].ID = ItemID(clean(string(items[i].ID)))
			items[i].Category = Category(clean(string(items[i].Category)))
		}
	}
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// TabIDs lists the showcase tab ids in display order.
func (c *Catalog) TabIDs() []Category {
	ids := make([]Category, 0, len(c.Tabs))
	for _, t := range c.Tabs {
		ids = append(ids, t.ID)
	}
	return ids
}

// Tab returns the tab with id.
func (c *Catalog) Tab(id Category) (Tab, bool) {
	for _, t := range c.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// ExamplesFor returns the examples of one tab in catalog order.
func (c *Catalog) ExamplesFor(id Category) []Item {
	var out []Item
	for _, item := range c.Examples {
		if item.Category == id {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks ids and category references.
func (c *Catalog) Validate() error {
	if len(c.Tabs) == 0 {
		return fmt.Errorf("%w: no tabs", ErrInvalid)
	}
	tabs := make(map[Category]struct{}, len(c.Tabs))
	for _, t := range c.Tabs {
		if t.ID == "" {
			return fmt.Errorf("%w: tab with empty id", ErrInvalid)
		}
		if _, dup := tabs[t.ID]; dup {
			return fmt.Errorf("%w: duplicate tab %q", ErrInvalid, t.ID)
		}
		tabs[t.ID] = struct{}{}
	}
	if err := checkItems("example", c.Examples, tabs); err != nil {
		return err
	}

	faqCats := make(map[Category]struct{}, len(c.FAQCategories))
	for _, cat := range c.FAQCategories {
		if cat == "" || cat == All {
			return fmt.Errorf("%w: reserved or empty faq category %q", ErrInvalid, cat)
		}
		if _, dup := faqCats[cat]; dup {
			return fmt.Errorf("%w: duplicate faq category %q", ErrInvalid, cat)
		}
		faqCats[cat] = struct{}{}
	}
	return checkItems("faq", c.FAQ, faqCats)
}

func checkItems(kind string, items []Item, cats map[Category]struct{}) error {
	seen := make(map[ItemID]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: %s item with empty id", ErrInvalid, kind)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate %s item %q", ErrInvalid, kind, item.ID)
		}
		seen[item.ID] = struct{}{}
		if _, ok := cats[item.Category]; !ok {
			return fmt.Errorf("%w: %s item %q has unknown category %q", ErrInvalid, kind, item.ID, item.Category)
		}
	}
	return nil
}
