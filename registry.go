package cerebro

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// OnError is called when a component returns an error.
	// Customize this to log or render errors for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a new component registry with the given key.
// Panics if the key is unusable.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("cerebro: failed to create encoder: %v", err))
	}

	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		OnError:    DefaultErrorHandler,
	}
}

// DefaultErrorHandler maps sentinel errors to HTTP status codes.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, http.StatusText(StatusCode(err)), StatusCode(err))
}

// StatusCode returns the HTTP status a component error should produce.
func StatusCode(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsBadRequest(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case IsCanceled(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components with the registry.
// Panics on a prefix collision, so mistakes surface at startup.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("cerebro: prefix collision for %q", prefix))
		}
		if es, ok := comp.(encoderSetter); ok {
			es.SetEncoder(reg.encoder)
		}
		reg.components[prefix] = comp

		reg.mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
			if err := comp.HXServeHTTP(w, r); err != nil {
				reg.OnError(w, r, err)
			}
		})
	}
}

// Prefixes returns the registered component prefixes, sorted.
func (reg *Registry) Prefixes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.components))
	for p := range reg.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Handler returns the HTTP handler for component routes.
// Mount this at "/_c/" in your application.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			if !IsHTMX(r) {
				http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
				return
			}
		}

		reg.mux.ServeHTTP(w, r)
	})
}
