package components

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"radient/internal/viewmodel"
)

func Navbar() templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<nav class="navbar"><a class="brand" href="/">Radient</a><ul>`)
		for _, link := range []struct{ href, label string }{
			{"#features", "Features"},
			{"#showcase-section", "Components"},
			{"#templates", "Templates"},
			{"#faq-section", "FAQ"},
		} {
			h.raw(`<li><a href="`)
			h.raw(link.href)
			h.raw(`">`)
			h.text(link.label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul><a class="btn btn-gradient" href="#showcase-section">Get started</a></nav>`)
	})
}

func Features(features []viewmodel.Feature) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="features-grid">`)
		for _, f := range features {
			h.raw(`<article class="feature"><div class="feature-icon" style="background:`)
			h.text(f.Gradient)
			h.raw(`"></div><h3>`)
			h.text(f.Title)
			h.raw(`</h3><p>`)
			h.text(f.Description)
			h.raw(`</p></article>`)
		}
		h.raw(`</div>`)
	})
}

func Templates(templates []viewmodel.Template) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="templates-grid">`)
		for _, t := range templates {
			h.raw(`<article class="template"><div class="template-cover" style="background:`)
			h.text(t.Gradient)
			h.raw(`"><span class="badge">`)
			h.text(t.Category)
			h.raw(`</span></div><h3>`)
			h.text(t.Title)
			h.raw(`</h3><p class="template-meta"><span>&#9733; `)
			h.raw(strconv.FormatFloat(t.Rating, 'f', 1, 64))
			h.raw(`</span><span>`)
			h.text(t.Downloads)
			h.raw(` downloads</span></p></article>`)
		}
		h.raw(`</div>`)
	})
}

func Testimonials(items []viewmodel.Testimonial) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="testimonials-grid">`)
		for _, t := range items {
			h.raw(`<figure class="testimonial"><div class="rating" aria-label="`)
			h.raw(strconv.Itoa(t.Rating))
			h.raw(` out of 5">`)
			h.raw(strings.Repeat("&#9733;", t.Rating))
			h.raw(`</div><blockquote>`)
			h.text(t.Content)
			h.raw(`</blockquote><figcaption><strong>`)
			h.text(t.Name)
			h.raw(`</strong> `)
			h.text(t.Role)
			h.raw(`, `)
			h.text(t.Company)
			h.raw(`</figcaption></figure>`)
		}
		h.raw(`</div>`)
	})
}
