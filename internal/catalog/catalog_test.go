package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Tabs) != 6 {
		t.Errorf("len(Tabs) %d, want 6", len(c.Tabs))
	}
	if c.Tabs[0].ID != "buttons" {
		t.Errorf("first tab %q, want buttons", c.Tabs[0].ID)
	}
	if len(c.FAQ) != 8 {
		t.Errorf("len(FAQ) %d, want 8", len(c.FAQ))
	}
	if len(c.FAQCategories) != 7 {
		t.Errorf("len(FAQCategories) %d, want 7", len(c.FAQCategories))
	}
	if c.FAQ[1].Category != "Getting Started" {
		t.Errorf("FAQ[1].Category %q, want Getting Started", c.FAQ[1].Category)
	}
	if len(c.Stats) != 4 || c.Stats[3].Value != "99.9%" {
		t.Errorf("Stats %+v", c.Stats)
	}
	if got := len(c.ExamplesFor("buttons")); got != 5 {
		t.Errorf("buttons examples %d, want 5", got)
	}
	if c.Templates[0].Rating != 4.9 {
		t.Errorf("Templates[0].Rating %v, want 4.9", c.Templates[0].Rating)
	}
}

func TestCatalog_Tab(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	tab, ok := c.Tab("forms")
	if !ok || tab.Name != "Forms" {
		t.Errorf("Tab(forms) = %+v, %v", tab, ok)
	}
	if _, ok := c.Tab("widgets"); ok {
		t.Error("Tab should not find an unknown id")
	}
}

func TestCatalog_ValidateRejects(t *testing.T) {
	base := func() *Catalog {
		return &Catalog{
			Tabs:          []Tab{{ID: "buttons"}},
			Examples:      []Item{{ID: "a", Category: "buttons"}},
			FAQCategories: []Category{"General"},
			FAQ:           []Item{{ID: "q1", Category: "General"}},
		}
	}
	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"no tabs", func(c *Catalog) { c.Tabs = nil }},
		{"duplicate tab", func(c *Catalog) { c.Tabs = append(c.Tabs, Tab{ID: "buttons"}) }},
		{"unknown example category", func(c *Catalog) { c.Examples[0].Category = "cards" }},
		{"duplicate faq id", func(c *Catalog) { c.FAQ = append(c.FAQ, Item{ID: "q1", Category: "General"}) }},
		{"reserved category", func(c *Catalog) { c.FAQCategories = append(c.FAQCategories, All) }},
		{"empty item id", func(c *Catalog) { c.FAQ[0].ID = "" }},
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base catalog: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("err %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_NormalizesLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := "tabs:\n  - id: buttons\n    name: Buttons\n" +
		"faq_categories:\n  - \"Caf\u00e9\"\n" +
		"faq:\n  - id: q1\n    category: \"Cafe\u0301\"\n    title: Q\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.FAQ[0].Category != c.FAQCategories[0] {
		t.Errorf("category %q not normalized to %q", c.FAQ[0].Category, c.FAQCategories[0])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
