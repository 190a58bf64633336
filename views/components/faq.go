package components

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"radient/internal/viewmodel"
)

// FAQFragment renders the category filter and the visible accordion rows.
func FAQFragment(data viewmodel.FAQFragment) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="faq-filters">`)
		for _, c := range data.Categories {
			h.raw(`<form method="post" action="/session/faq/category" hx-post="/session/faq/category" hx-target="#faq" hx-swap="innerHTML">`)
			h.raw(`<input type="hidden" name="category" value="`)
			h.text(c.Label)
			h.raw(`"><button type="submit" class="chip `)
			h.raw(classIf(c.Active, "chip-active", ""))
			h.raw(`">`)
			h.text(c.Label)
			h.raw(`</button></form>`)
		}
		h.raw(`</div>`)

		if len(data.Entries) == 0 {
			h.raw(`<p class="faq-empty">No questions in this category yet.</p>`)
			return
		}
		h.raw(`<div class="faq-list">`)
		for _, e := range data.Entries {
			path := templ.EscapeString("/session/faq/" + url.PathEscape(e.ID) + "/toggle")
			h.raw(`<div class="faq-item `)
			h.raw(classIf(e.Open, "faq-open", ""))
			h.raw(`"><form method="post" action="`)
			h.raw(path)
			h.raw(`" hx-post="`)
			h.raw(path)
			h.raw(`" hx-target="#faq" hx-swap="innerHTML">`)
			h.raw(`<button type="submit" class="faq-question" aria-expanded="`)
			h.raw(classIf(e.Open, "true", "false"))
			h.raw(`">`)
			h.text(e.Title)
			h.raw(`</button></form>`)
			if e.Open {
				h.raw(`<div class="faq-answer">`)
				h.text(e.Body)
				h.raw(`</div>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

// SubscribeFragment is the footer newsletter form.
func SubscribeFragment(data viewmodel.SubscribeFragment) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<form method="post" action="/session/subscribe" hx-post="/session/subscribe" hx-target="#subscribe" hx-swap="innerHTML" class="subscribe">`)
		h.raw(`<input type="email" name="email" placeholder="Enter your email" aria-label="Email">`)
		h.raw(`<button type="submit" class="btn btn-gradient">`)
		h.raw(classIf(data.Subscribed, "Subscribed!", "Subscribe"))
		h.raw(`</button></form>`)
		if data.Error != "" {
			h.raw(`<p class="form-error" role="alert">`)
			h.text(data.Error)
			h.raw(`</p>`)
		}
	})
}
