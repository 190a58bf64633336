package components

import (
	"context"

	"github.com/a-h/templ"

	"radient/internal/viewmodel"
)

// HeroLayers draws the particle and sparkle layers. Positions come from the
// server so the first paint matches any later re-render.
func HeroLayers(data viewmodel.Hero) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div class="hero-layers" aria-hidden="true">`)
		for _, p := range data.Particles {
			h.raw(`<span class="particle" style="top:`)
			h.num(p.Top)
			h.raw(`%;left:`)
			h.num(p.Left)
			h.raw(`%;width:`)
			h.num(p.Size)
			h.raw(`px;height:`)
			h.num(p.Size)
			h.raw(`px;animation-delay:`)
			h.num(p.Delay)
			h.raw(`s;animation-duration:`)
			h.num(p.Duration)
			h.raw(`s"></span>`)
		}
		for _, p := range data.Sparkles {
			h.raw(`<span class="sparkle" style="top:`)
			h.num(p.Top)
			h.raw(`%;left:`)
			h.num(p.Left)
			h.raw(`%;--scale:`)
			h.num(p.Size)
			h.raw(`;animation-delay:`)
			h.num(p.Delay)
			h.raw(`s;animation-duration:`)
			h.num(p.Duration)
			h.raw(`s">&#10022;</span>`)
		}
		h.raw(`</div>`)
	})
}

// Stats renders the headline numbers under the hero copy.
func Stats(stats []viewmodel.Stat) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<dl class="stats">`)
		for _, s := range stats {
			h.raw(`<div class="stat"><dt>`)
			h.text(s.Label)
			h.raw(`</dt><dd>`)
			h.text(s.Value)
			h.raw(`</dd></div>`)
		}
		h.raw(`</dl>`)
	})
}
