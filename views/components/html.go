// Package components renders the page fragments that the server swaps in
// over htmx and the session stream.
package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// html accumulates the first write error so components can emit markup
// without checking every call.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) num(v float64) {
	h.raw(strconv.FormatFloat(v, 'f', -1, 64))
}

func (h *html) child(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

func classIf(cond bool, on, off string) string {
	if cond {
		return on
	}
	return off
}
