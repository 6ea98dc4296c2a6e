// Package theme declares the colour palette available to feature subtrees.
package theme

import (
	"fmt"
	"net/http"
	"strings"
)

// Shade is one step of a hue family.
type Shade struct {
	Step  int
	Value string
}

// Family is a named hue with its shades, lightest first.
type Family struct {
	Name   string
	Shades []Shade
}

// Palette is fixed: two hue families, four shades each.
var Palette = []Family{
	{Name: "brand", Shades: []Shade{
		{100, "#e0e7ff"},
		{300, "#a5b4fc"},
		{500, "#6366f1"},
		{700, "#4338ca"},
	}},
	{Name: "accent", Shades: []Shade{
		{100, "#fce7f3"},
		{300, "#f9a8d4"},
		{500, "#ec4899"},
		{700, "#be185d"},
	}},
}

// Token returns the CSS custom property name for a family and step,
// e.g. "--brand-500".
func Token(family string, step int) string {
	return fmt.Sprintf("--%s-%d", family, step)
}

// Lookup returns the colour for a family and step.
func Lookup(family string, step int) (string, bool) {
	for _, f := range Palette {
		if f.Name != family {
			continue
		}
		for _, s := range f.Shades {
			if s.Step == step {
				return s.Value, true
			}
		}
	}
	return "", false
}

// CSS renders the palette as custom properties on :root.
func CSS() string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, f := range Palette {
		for _, s := range f.Shades {
			fmt.Fprintf(&sb, "  %s: %s;\n", Token(f.Name, s.Step), s.Value)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Handler serves CSS() as a stylesheet.
func Handler() http.Handler {
	body := CSS()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write([]byte(body))
	})
}
