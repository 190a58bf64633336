package viewmodel

// Point is one scatter element with CSS-ready percentages and seconds.
type Point struct {
	Top      float64
	Left     float64
	Delay    float64
	Duration float64
	Size     float64
}

// Hero holds the decorative layers behind the landing section.
type Hero struct {
	Particles []Point
	Sparkles  []Point
	Stats     []Stat
}

// Stat is one headline number.
type Stat struct {
	Value string
	Label string
}

// Feature is one card in the features grid.
type Feature struct {
	Title       string
	Description string
	Gradient    string
}

// TabButton is one gallery category button.
type TabButton struct {
	ID     string
	Name   string
	Color  string
	Active bool
}

// Example is one component preview in the gallery.
type Example struct {
	ID         string
	Title      string
	Body       string
	RenderSpec string
}

// ShowcaseFragment holds data for the gallery panel.
type ShowcaseFragment struct {
	Tabs        []TabButton
	Title       string
	Description string
	Color       string
	Examples    []Example
	Playing     bool
	Copied      bool
}

// FormsFragment holds data for the forms demo panel.
type FormsFragment struct {
	Notifications bool
}

// FilterButton is one FAQ category button.
type FilterButton struct {
	Label  string
	Active bool
}

// FAQEntry is one accordion row.
type FAQEntry struct {
	ID    string
	Title string
	Body  string
	Open  bool
}

// FAQFragment holds data for the FAQ panel.
type FAQFragment struct {
	Categories []FilterButton
	Entries    []FAQEntry
}

// SubscribeFragment holds data for the footer newsletter form.
type SubscribeFragment struct {
	Subscribed bool
	Error      string
}

// Template is one card in the templates grid.
type Template struct {
	Title     string
	Category  string
	Rating    float64
	Downloads string
	Gradient  string
}

// Testimonial is one customer quote.
type Testimonial struct {
	Name    string
	Role    string
	Company string
	Content string
	Rating  int
}

// HomePage holds data for the full landing page.
type HomePage struct {
	Title        string
	Hero         Hero
	Features     []Feature
	Showcase     ShowcaseFragment
	Forms        FormsFragment
	Templates    []Template
	Testimonials []Testimonial
	FAQ          FAQFragment
	Subscribe    SubscribeFragment
}
