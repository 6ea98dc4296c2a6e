// Package redirects holds the static redirect table applied in front of
// page routes.
package redirects

import (
	"net/http"
	"sort"

	"github.com/rs/zerolog/hlog"
)

// DonatePath and SubscribePath are the two page routes.
const (
	DonatePath    = "/donate"
	SubscribePath = "/subscribe"
)

// Rule redirects requests for Source to Destination.
type Rule struct {
	Source      string
	Destination string
	Permanent   bool
}

// Status returns 308 for permanent rules and 307 otherwise, so the request
// method is preserved either way.
func (r Rule) Status() int {
	if r.Permanent {
		return http.StatusPermanentRedirect
	}
	return http.StatusTemporaryRedirect
}

// SelfReferential reports whether the rule points back at its own source.
// Such rules are served as a pass-through instead of a redirect loop.
func (r Rule) SelfReferential() bool {
	return r.Source == r.Destination
}

// Table is an immutable set of rules keyed by exact source path.
type Table struct {
	rules map[string]Rule
}

// Default is the application's redirect table. The donation rule maps the
// path to itself and is kept as a marked no-op.
func Default() *Table {
	return NewTable(Rule{Source: DonatePath, Destination: DonatePath, Permanent: true})
}

// NewTable builds a table. A later rule for the same source wins.
func NewTable(rules ...Rule) *Table {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		t.rules[r.Source] = r
	}
	return t
}

// Resolve returns the rule for path, if any.
func (t *Table) Resolve(path string) (Rule, bool) {
	r, ok := t.rules[path]
	return r, ok
}

// Rules returns all rules sorted by source.
func (t *Table) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Middleware applies the table. Self-referential rules fall through to next.
func (t *Table) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, ok := t.Resolve(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if rule.SelfReferential() {
			hlog.FromRequest(r).Debug().Str("path", rule.Source).Msg("self-referential redirect skipped")
			next.ServeHTTP(w, r)
			return
		}

		dest := rule.Destination
		if r.URL.RawQuery != "" {
			dest += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, dest, rule.Status())
	})
}
