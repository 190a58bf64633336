package components

import (
	"context"

	"github.com/a-h/templ"

	"radient/internal/viewmodel"
)

// ShowcaseFragment is the gallery panel: tab buttons, the preview toggle,
// the copy button and the active tab's examples.
func ShowcaseFragment(data viewmodel.ShowcaseFragment) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="showcase-tabs" role="tablist">`)
		for _, tab := range data.Tabs {
			h.raw(`<form method="post" action="/session/tab" hx-post="/session/tab" hx-target="#showcase" hx-swap="innerHTML">`)
			h.raw(`<input type="hidden" name="tab" value="`)
			h.text(tab.ID)
			h.raw(`"><button type="submit" role="tab" aria-selected="`)
			h.raw(classIf(tab.Active, "true", "false"))
			h.raw(`" class="tab `)
			h.raw(classIf(tab.Active, "tab-active", ""))
			h.raw(`" style="--tab-color:`)
			h.text(tab.Color)
			h.raw(`">`)
			h.text(tab.Name)
			h.raw(`</button></form>`)
		}
		h.raw(`</div>`)

		h.raw(`<div class="showcase-header"><div><h3>`)
		h.text(data.Title)
		h.raw(`</h3><p>`)
		h.text(data.Description)
		h.raw(`</p></div><div class="showcase-actions">`)

		h.raw(`<form method="post" action="/session/playback" hx-post="/session/playback" hx-target="#showcase" hx-swap="innerHTML">`)
		h.raw(`<button type="submit" class="btn btn-ghost" aria-pressed="`)
		h.raw(classIf(data.Playing, "true", "false"))
		h.raw(`">`)
		h.raw(classIf(data.Playing, "Pause", "Preview"))
		h.raw(`</button></form>`)

		h.raw(`<form method="post" action="/session/copy" hx-post="/session/copy" hx-target="#showcase" hx-swap="innerHTML">`)
		h.raw(`<button type="submit" class="btn btn-outline copy-button" data-copy-target="#showcase-code">`)
		h.raw(classIf(data.Copied, "Copied!", "Copy code"))
		h.raw(`</button></form>`)
		h.raw(`</div></div>`)

		h.raw(`<div class="showcase-grid `)
		h.raw(classIf(data.Playing, "is-playing", ""))
		h.raw(`">`)
		for _, ex := range data.Examples {
			h.raw(`<article class="example" id="example-`)
			h.text(ex.ID)
			h.raw(`"><div class="example-preview `)
			h.text(ex.RenderSpec)
			h.raw(`">`)
			h.text(ex.Title)
			h.raw(`</div><p>`)
			h.text(ex.Body)
			h.raw(`</p></article>`)
		}
		h.raw(`</div>`)

		h.raw(`<pre id="showcase-code" class="showcase-code"><code>`)
		for _, ex := range data.Examples {
			h.raw(`&lt;div class=&#34;`)
			h.text(ex.RenderSpec)
			h.raw(`&#34;&gt;`)
			h.text(ex.Title)
			h.raw("&lt;/div&gt;\n")
		}
		h.raw(`</code></pre>`)
	})
}

// FormsFragment is the interactive forms demo.
func FormsFragment(data viewmodel.FormsFragment) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="forms-demo">`)
		h.raw(`<label class="field"><span>Email</span><input type="email" name="demo-email" placeholder="you@example.com"></label>`)
		h.raw(`<form method="post" action="/session/notifications" hx-post="/session/notifications" hx-target="#forms" hx-swap="innerHTML" class="switch-row">`)
		h.raw(`<span>Notifications</span><button type="submit" role="switch" class="switch `)
		h.raw(classIf(data.Notifications, "switch-on", ""))
		h.raw(`" aria-checked="`)
		h.raw(classIf(data.Notifications, "true", "false"))
		h.raw(`"><span class="switch-thumb"></span></button></form>`)
		h.raw(`<div class="progress"><div class="progress-bar" style="width:`)
		h.raw(classIf(data.Notifications, "100", "60"))
		h.raw(`%"></div></div>`)
		h.raw(`</div>`)
	})
}
