package redirects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDonateRuleResolvesToItself(t *testing.T) {
	rule, ok := Default().Resolve(DonatePath)
	require.True(t, ok)

	assert.Equal(t, DonatePath, rule.Destination)
	assert.Equal(t, http.StatusPermanentRedirect, rule.Status())
	assert.True(t, rule.SelfReferential())
}

func TestResolveMiss(t *testing.T) {
	_, ok := Default().Resolve(SubscribePath)
	assert.False(t, ok)
}

func TestRuleStatus(t *testing.T) {
	assert.Equal(t, http.StatusPermanentRedirect, Rule{Permanent: true}.Status())
	assert.Equal(t, http.StatusTemporaryRedirect, Rule{}.Status())
}

func TestMiddleware(t *testing.T) {
	table := NewTable(
		Rule{Source: DonatePath, Destination: DonatePath, Permanent: true},
		Rule{Source: "/give", Destination: DonatePath, Permanent: true},
		Rule{Source: "/join", Destination: SubscribePath},
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("page:" + r.URL.Path))
	})
	h := table.Middleware(next)

	tests := []struct {
		name     string
		target   string
		status   int
		location string
		body     string
	}{
		{"self rule passes through", DonatePath, http.StatusOK, "", "page:/donate"},
		{"permanent redirect", "/give", http.StatusPermanentRedirect, "/donate", ""},
		{"temporary redirect keeps query", "/join?plan=yearly", http.StatusTemporaryRedirect, "/subscribe?plan=yearly", ""},
		{"no rule", "/other", http.StatusOK, "", "page:/other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRulesSorted(t *testing.T) {
	table := NewTable(Rule{Source: "/b"}, Rule{Source: "/a"})
	rules := table.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "/a", rules[0].Source)
}
