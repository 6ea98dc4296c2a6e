package cerebro

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/hashicorp/golang-lru/v2/expirable"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultFallbackText is shown by NewGate until the page is interactive.
	DefaultFallbackText = "Loading donation page..."

	// PlaceholderText is the fixed placeholder of NewSuppressedGate.
	PlaceholderText = "Loading..."

	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12

	// Mounted instance ids are remembered this long, up to mountMemorySize
	// ids, so a replayed mount request does not count as a new mount.
	mountMemorySize = 10000
	mountMemoryTTL  = time.Hour
)

// Loader produces a gate's child subtree. A gate calls it at most once.
type Loader func(ctx context.Context) (templ.Component, error)

// Observer is notified about gate lifecycle events. Implementations must be
// safe for concurrent use.
type Observer interface {
	// GateMounted is called once per instance, when its latch transitions.
	GateMounted(gate string)
	// ChildLoaded is called once per gate, when its Loader returns or panics.
	ChildLoaded(gate string, took time.Duration, err error)
}

// Option configures a Gate.
type Option func(*Gate)

// WithFallback replaces the default fallback of NewGate. It has no effect
// on suppressed gates, whose placeholder is fixed.
func WithFallback(fallback templ.Component) Option {
	return func(g *Gate) {
		g.fallback = fallback
	}
}

// WithObserver registers an observer for mount and load events.
func WithObserver(o Observer) Option {
	return func(g *Gate) {
		g.observers = append(g.observers, o)
	}
}

// WithTrigger changes the HTMX event that signals the page is interactive.
// The default is TriggerLoad.
func WithTrigger(t Trigger) Option {
	return func(g *Gate) {
		g.trigger = t
	}
}

// Sensitive encrypts the instance props instead of only signing them.
func Sensitive() Option {
	return func(g *Gate) {
		g.sensitive = true
	}
}

// Gate withholds a child subtree until the page is interactive.
//
// A Gate is long-lived and registered once; per-render state lives in the
// Instances it creates. The child subtree is shared by all instances and
// loaded the first time any instance mounts.
type Gate struct {
	*Component
	child      *Deferred[templ.Component]
	fallback   templ.Component
	suppressed bool
	trigger    Trigger
	observers  []Observer

	mountMu sync.Mutex
	mounted *expirable.LRU[string, struct{}]
}

// NewGate creates a hydration gate. Until an instance mounts it renders the
// fallback (DefaultFallback unless WithFallback is given); afterwards it
// renders the child subtree with no wrapper.
func NewGate(name string, load Loader, opts ...Option) *Gate {
	g := newGate(name, load, 1, opts)
	if g.fallback == nil {
		g.fallback = DefaultFallback()
	}
	return g
}

// NewSuppressedGate creates a gate whose output is always wrapped in an
// element exempt from hydration-mismatch diagnostics. The wrapper exposes
// the latch state in data-hydrated and the placeholder is always
// PlaceholderText.
func NewSuppressedGate(name string, load Loader, opts ...Option) *Gate {
	g := newGate(name, load, 1, opts)
	g.suppressed = true
	g.fallback = Placeholder()
	return g
}

func newGate(name string, load Loader, skip int, opts []Option) *Gate {
	g := &Gate{
		Component: newComponent(name, skip+1),
		trigger:   TriggerLoad,
		mounted:   expirable.NewLRU[string, struct{}](mountMemorySize, nil, mountMemoryTTL),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.child = NewDeferred(func(ctx context.Context) (c templ.Component, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				c, err = nil, fmt.Errorf("%w: panic: %v", ErrLoadFailed, r)
			}
			for _, o := range g.observers {
				o.ChildLoaded(g.name, time.Since(start), err)
			}
		}()
		c, err = load(ctx)
		if err == nil && c == nil {
			err = fmt.Errorf("%w: loader returned no component", ErrLoadFailed)
		}
		return c, err
	})
	return g
}

// firstMount records id as mounted and reports whether it was new.
func (g *Gate) firstMount(id string) bool {
	g.mountMu.Lock()
	defer g.mountMu.Unlock()
	if g.mounted.Contains(id) {
		return false
	}
	g.mounted.Add(id, struct{}{})
	return true
}

// Suppressed reports whether the gate was created by NewSuppressedGate.
func (g *Gate) Suppressed() bool {
	return g.suppressed
}

// Fallback returns what the gate renders before it is interactive.
func (g *Gate) Fallback() templ.Component {
	return g.fallback
}

// Loaded reports whether the child subtree has finished loading.
func (g *Gate) Loaded() bool {
	return g.child.Resolved()
}

// Instance creates a fresh gate instance in the AwaitingInteractive state.
func (g *Gate) Instance() *Instance {
	return g.instance(gonanoid.MustGenerate(idAlphabet, idLength))
}

func (g *Gate) instance(id string) *Instance {
	return &Instance{gate: g, id: id}
}

// HXServeHTTP answers the mount request sent by an awaiting instance: it
// mounts the identified instance and writes its interactive render.
//
// The response is buffered so a failed child load leaves nothing written;
// HTMX does not swap error responses, so the fallback stays visible.
func (g *Gate) HXServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		return ErrMethodNotAllowed
	}

	var props instanceProps
	if err := g.decodeProps(r, &props); err != nil {
		return err
	}

	inst := g.instance(props.ID)
	inst.Mount(r.Context())

	var buf bytes.Buffer
	if err := inst.Render(r.Context(), &buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, err := buf.WriteTo(w)
	return err
}

// Instance is one rendering of a gate. It owns its latch exclusively and
// implements templ.Component.
type Instance struct {
	gate  *Gate
	id    string
	latch Latch
}

// ID returns the instance id. The wrapper element's id is "gate-" + ID.
func (i *Instance) ID() string {
	return i.id
}

// State returns the instance's hydration state.
func (i *Instance) State() State {
	return i.latch.State()
}

// Mount delivers the interactive signal. The first call flips the latch and
// starts loading the gate's child. Observers are notified and true returned
// only the first time an instance id mounts, so a replayed mount request
// renders the child without repeating one-time effects. Later calls on the
// same Instance return false and have no effect.
func (i *Instance) Mount(ctx context.Context) bool {
	if !i.latch.Mount() {
		return false
	}
	i.gate.child.Start(ctx)
	if !i.gate.firstMount(i.id) {
		return false
	}
	for _, o := range i.gate.observers {
		o.GateMounted(i.gate.name)
	}
	return true
}

// Render writes the fallback while awaiting, and the child subtree once
// interactive. Once interactive it blocks until the child has loaded.
func (i *Instance) Render(ctx context.Context, w io.Writer) error {
	if !i.latch.Mounted() {
		return i.renderAwaiting(ctx, w)
	}

	child, err := i.gate.child.Wait(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return fmt.Errorf("%w: gate %s: %w", ErrLoadFailed, i.gate.name, err)
	}

	if !i.gate.suppressed {
		return child.Render(ctx, w)
	}
	return wrap(ctx, w, i.wrapperAttrs(), child)
}

func (i *Instance) renderAwaiting(ctx context.Context, w io.Writer) error {
	url, err := i.gate.buildURL(instanceProps{ID: i.id})
	if err != nil {
		return err
	}
	attrs := append(i.wrapperAttrs(), triggerAttrs(url, i.gate.trigger)...)
	return wrap(ctx, w, attrs, i.gate.fallback)
}

func (i *Instance) wrapperAttrs() []attr {
	attrs := []attr{{"id", "gate-" + i.id}}
	if i.gate.suppressed {
		attrs = append(attrs,
			attr{"data-hydrated", fmt.Sprint(i.latch.Mounted())},
			attr{"data-suppress-hydration-warning", "true"},
		)
	}
	return attrs
}

// instanceProps is what an awaiting instance sends back in its mount URL.
type instanceProps struct {
	ID string
}

func (p instanceProps) HXEncode() map[string]any {
	return map[string]any{"i": p.ID}
}

func (p *instanceProps) HXDecode(m map[string]any) error {
	id, ok := m["i"].(string)
	if !ok || id == "" || len(id) > 64 {
		return ErrInvalidFormat
	}
	p.ID = id
	return nil
}

// DefaultFallback is a full-viewport, centered DefaultFallbackText on a
// fixed gradient background.
func DefaultFallback() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="gate-fallback" style="min-height:100vh;display:flex;align-items:center;justify-content:center;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%)">`+
			`<p style="color:#fff;font-size:1.25rem">`+DefaultFallbackText+`</p></div>`)
		return err
	})
}

// Placeholder is the fixed placeholder of suppressed gates.
func Placeholder() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, PlaceholderText)
		return err
	})
}
