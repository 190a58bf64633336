package handlers

import (
	"radient/internal/catalog"
	"radient/internal/scatter"
	"radient/internal/showcase"
	"radient/internal/viewmodel"
)

func buildShowcaseFragment(snap showcase.Snapshot) viewmodel.ShowcaseFragment {
	tabs := make([]viewmodel.TabButton, 0, len(snap.Tabs))
	for _, t := range snap.Tabs {
		tabs = append(tabs, viewmodel.TabButton{
			ID:     string(t.ID),
			Name:   t.Name,
			Color:  t.Color,
			Active: t.ID == snap.ActiveTab.ID,
		})
	}
	examples := make([]viewmodel.Example, 0, len(snap.Examples))
	for _, ex := range snap.Examples {
		examples = append(examples, viewmodel.Example{
			ID:         string(ex.ID),
			Title:      ex.Title,
			Body:       ex.Body,
			RenderSpec: ex.RenderSpec,
		})
	}
	return viewmodel.ShowcaseFragment{
		Tabs:        tabs,
		Title:       snap.ActiveTab.Name,
		Description: snap.ActiveTab.Description,
		Color:       snap.ActiveTab.Color,
		Examples:    examples,
		Playing:     snap.Playback == showcase.Playing,
		Copied:      snap.Copied,
	}
}

func buildFormsFragment(snap showcase.Snapshot) viewmodel.FormsFragment {
	return viewmodel.FormsFragment{Notifications: snap.Notifications}
}

func buildFAQFragment(snap showcase.Snapshot) viewmodel.FAQFragment {
	cats := make([]viewmodel.FilterButton, 0, len(snap.FAQCategories))
	for _, c := range snap.FAQCategories {
		cats = append(cats, viewmodel.FilterButton{Label: string(c), Active: c == snap.FAQCategory})
	}
	entries := make([]viewmodel.FAQEntry, 0, len(snap.FAQ))
	for _, item := range snap.FAQ {
		entries = append(entries, viewmodel.FAQEntry{
			ID:    string(item.ID),
			Title: item.Title,
			Body:  item.Body,
			Open:  snap.FAQOpen && item.ID == snap.OpenFAQ,
		})
	}
	return viewmodel.FAQFragment{Categories: cats, Entries: entries}
}

func buildSubscribeFragment(snap showcase.Snapshot, errMsg string) viewmodel.SubscribeFragment {
	return viewmodel.SubscribeFragment{Subscribed: snap.Subscribed, Error: errMsg}
}

func toPoints(points []scatter.Point) []viewmodel.Point {
	out := make([]viewmodel.Point, 0, len(points))
	for _, p := range points {
		out = append(out, viewmodel.Point{
			Top:      p.Top,
			Left:     p.Left,
			Delay:    p.Delay,
			Duration: p.Duration,
			Size:     p.Size,
		})
	}
	return out
}

func buildHomePage(cat *catalog.Catalog, snap showcase.Snapshot) viewmodel.HomePage {
	stats := make([]viewmodel.Stat, 0, len(cat.Stats))
	for _, s := range cat.Stats {
		stats = append(stats, viewmodel.Stat{Value: s.Value, Label: s.Label})
	}
	features := make([]viewmodel.Feature, 0, len(cat.Features))
	for _, f := range cat.Features {
		features = append(features, viewmodel.Feature{Title: f.Title, Description: f.Description, Gradient: f.Gradient})
	}
	templates := make([]viewmodel.Template, 0, len(cat.Templates))
	for _, t := range cat.Templates {
		templates = append(templates, viewmodel.Template{
			Title:     t.Title,
			Category:  t.Category,
			Rating:    t.Rating,
			Downloads: t.Downloads,
			Gradient:  t.Gradient,
		})
	}
	testimonials := make([]viewmodel.Testimonial, 0, len(cat.Testimonials))
	for _, t := range cat.Testimonials {
		testimonials = append(testimonials, viewmodel.Testimonial{
			Name:    t.Name,
			Role:    t.Role,
			Company: t.Company,
			Content: t.Content,
			Rating:  clampRating(t.Rating),
		})
	}

	return viewmodel.HomePage{
		Title: "Radient - Beautiful components",
		Hero: viewmodel.Hero{
			Particles: toPoints(snap.Particles),
			Sparkles:  toPoints(snap.Sparkles),
			Stats:     stats,
		},
		Features:     features,
		Showcase:     buildShowcaseFragment(snap),
		Forms:        buildFormsFragment(snap),
		Templates:    templates,
		Testimonials: testimonials,
		FAQ:          buildFAQFragment(snap),
		Subscribe:    buildSubscribeFragment(snap, ""),
	}
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
