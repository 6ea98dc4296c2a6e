package cerebro

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds the result of rendering a component for testing.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestRender renders any templ component (including an Instance) to a
// TestResult, using a background context.
//
//	result, err := cerebro.TestRender(inst)
//	if !result.HTMLContains(cerebro.DefaultFallbackText) { ... }
func TestRender(component templ.Component) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), component)
}

// TestRenderWithContext renders a component with a custom context.
func TestRenderWithContext(ctx context.Context, component templ.Component) (*TestResult, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestGet simulates an HTMX GET against a component. The component's error,
// if any, is returned alongside the recorded response.
//
//	result, err := cerebro.TestGet(gate, cerebro.MountURL(before.HTML))
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	err := comp.HXServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}, err
}

// TestMount renders a fresh instance of g before and after its interactive
// signal. g must be registered (or have an encoder set).
func TestMount(g *Gate) (before, after *TestResult, err error) {
	inst := g.Instance()
	if before, err = TestRender(inst); err != nil {
		return nil, nil, err
	}
	inst.Mount(context.Background())
	if after, err = TestRender(inst); err != nil {
		return before, nil, err
	}
	return before, after, nil
}

var hxGetRe = regexp.MustCompile(`hx-get="([^"]+)"`)

// MountURL extracts the first hx-get URL from rendered HTML, or "".
func MountURL(html string) string {
	m := hxGetRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], "&amp;", "&")
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// TestRequestBuilder provides a fluent interface for building test requests.
//
//	result, err := cerebro.NewTestRequest("GET", mountURL).
//	    WithHeader("HX-Boosted", "true").
//	    Execute(gate)
type TestRequestBuilder struct {
	method  string
	url     string
	headers map[string]string
	ctx     context.Context
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:  method,
		url:     url,
		headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute executes the request against an HXComponent.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	req := httptest.NewRequest(b.method, b.url, nil).WithContext(b.ctx)
	req.Header.Set("HX-Request", "true")
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	err := comp.HXServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}, err
}
