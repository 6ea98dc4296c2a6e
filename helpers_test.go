package cerebro

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
)

func TestIsHTMX(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect bool
	}{
		{"with HX-Request true", "true", true},
		{"with HX-Request false", "false", false},
		{"without header", "", false},
		{"with other value", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Request", tt.header)
			}

			if got := IsHTMX(req); got != tt.expect {
				t.Errorf("IsHTMX() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestIsBoosted(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect bool
	}{
		{"with HX-Boosted true", "true", true},
		{"with HX-Boosted false", "false", false},
		{"without header", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Boosted", tt.header)
			}

			if got := IsBoosted(req); got != tt.expect {
				t.Errorf("IsBoosted() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRenderWritesHTML(t *testing.T) {
	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := Render(rec, req, comp); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html; charset=utf-8", ct)
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q, want <p>hi</p>", rec.Body.String())
	}
}
