// Package pages renders full documents.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"radient/internal/viewmodel"
	"radient/views/components"
)

const head = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="/static/app.css">
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<script src="/static/app.js" defer></script>
<title>`

// HomePage is the landing page. The body subscribes to the session stream so
// each fragment is replaced whenever its state changes, including timer
// driven resets.
func HomePage(data viewmodel.HomePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts := []func() error{
			write(w, head),
			write(w, templ.EscapeString(data.Title)),
			write(w, `</title></head><body hx-ext="sse" sse-connect="/session/stream">`),
			render(ctx, w, components.Navbar()),

			write(w, `<header class="hero">`),
			render(ctx, w, components.HeroLayers(data.Hero)),
			write(w, `<div class="hero-copy"><span class="badge">New components every week</span>`+
				`<h1>Build <span class="gradient-text">radiant</span> interfaces</h1>`+
				`<p>A component library with motion, gradients and glass, ready to paste into your app.</p>`+
				`<a class="btn btn-gradient" href="#showcase-section">Browse components</a></div>`),
			render(ctx, w, components.Stats(data.Hero.Stats)),
			write(w, `</header>`),

			write(w, `<section id="features"><h2>Why Radient</h2>`),
			render(ctx, w, components.Features(data.Features)),
			write(w, `</section>`),

			write(w, `<section id="showcase-section"><h2>Component showcase</h2>`+
				`<div id="showcase" sse-swap="showcase" hx-swap="innerHTML">`),
			render(ctx, w, components.ShowcaseFragment(data.Showcase)),
			write(w, `</div><h3>Forms</h3><div id="forms" sse-swap="forms" hx-swap="innerHTML">`),
			render(ctx, w, components.FormsFragment(data.Forms)),
			write(w, `</div></section>`),

			write(w, `<section id="templates"><h2>Templates</h2>`),
			render(ctx, w, components.Templates(data.Templates)),
			write(w, `</section>`),

			write(w, `<section id="testimonials"><h2>Loved by developers</h2>`),
			render(ctx, w, components.Testimonials(data.Testimonials)),
			write(w, `</section>`),

			write(w, `<section id="faq-section"><h2>Frequently asked questions</h2>`+
				`<div id="faq" sse-swap="faq" hx-swap="innerHTML">`),
			render(ctx, w, components.FAQFragment(data.FAQ)),
			write(w, `</div></section>`),

			write(w, `<footer class="footer"><div><a class="brand" href="/">Radient</a>`+
				`<p>Stay up to date with new releases.</p></div>`+
				`<div id="subscribe" sse-swap="subscribe" hx-swap="innerHTML">`),
			render(ctx, w, components.SubscribeFragment(data.Subscribe)),
			write(w, `</div></footer></body></html>`),
		}
		for _, part := range parts {
			if err := part(); err != nil {
				return err
			}
		}
		return nil
	})
}

func write(w io.Writer, s string) func() error {
	return func() error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func render(ctx context.Context, w io.Writer, c templ.Component) func() error {
	return func() error { return c.Render(ctx, w) }
}
