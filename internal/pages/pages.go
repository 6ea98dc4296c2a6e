// Package pages renders the full-document routes. Each request gets a fresh
// gate instance, so latches are never shared between visitors.
package pages

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/hlog"

	cerebro "github.com/ohquinton/Cerebro-sub001"
)

// HTMXScript is the script tag source loaded by every page.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="/theme.css">` +
			`<script src="` + HTMXScript + `"></script>` +
			`</head><body><main id="content">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Page serves one gate-backed route.
type Page struct {
	Title string
	Gate  *cerebro.Gate
}

// Donation is the /donate page.
func Donation(g *cerebro.Gate) *Page {
	return &Page{Title: "Donate", Gate: g}
}

// Subscription is the /subscribe page.
func Subscription(g *cerebro.Gate) *Page {
	return &Page{Title: "Subscribe", Gate: g}
}

// ServeHTTP renders the page with a new, awaiting gate instance. Boosted
// navigations get the content area only.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	inst := p.Gate.Instance()
	var body templ.Component = inst
	if !cerebro.IsBoosted(r) {
		body = Layout(p.Title, inst)
	}

	var buf bytes.Buffer
	if err := body.Render(r.Context(), &buf); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gate", p.Gate.Name()).Msg("page render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	hlog.FromRequest(r).Debug().Str("gate", p.Gate.Name()).Str("instance", inst.ID()).Msg("gate instance rendered")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("gate", p.Gate.Name()).Msg("page write failed")
	}
}
