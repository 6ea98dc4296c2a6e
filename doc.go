// Package cerebro provides hydration gates for server-rendered pages built
// with Templ and HTMX.
//
// A gate withholds its real content until the page is live in the browser.
// The first response for a page contains only a placeholder wrapped in an
// element that HTMX requests back with hx-trigger="load". That request is the
// interactive signal: the server flips the gate's latch, loads the child
// subtree (once per process) and answers with the real content, which
// replaces the placeholder.
//
// # Gates
//
// Two variants share one state machine:
//
//	donate := cerebro.NewGate("donation", donation.Load(opts))
//	subscribe := cerebro.NewSuppressedGate("subscription", subscription.Load(opts))
//
// NewGate renders a replaceable fallback (WithFallback) and leaves no wrapper
// behind once interactive. NewSuppressedGate always renders a wrapper that is
// exempt from hydration-mismatch diagnostics and exposes the current state in
// its data-hydrated attribute; its placeholder is fixed.
//
// Each page render creates its own Instance:
//
//	inst := donate.Instance()
//	inst.Render(ctx, w) // fallback
//	inst.Mount(ctx)     // interactive signal, one-time
//	inst.Render(ctx, w) // child subtree from now on
//
// # Latch and Deferred
//
// Latch is the one-shot AwaitingInteractive -> Interactive switch behind every
// instance. Deferred is a future resolved exactly once; a gate only starts its
// child's Deferred when an instance mounts, so nothing is loaded for a page
// that never becomes interactive.
//
// # Registration and Routing
//
// Gates are registered with a Registry, which mounts each one under its
// unique prefix:
//
//	reg := cerebro.NewRegistry(secretKey)
//	reg.Add(donate, subscribe)
//	http.Handle("/_c/", reg.Handler())
//
// Instance ids travel to the browser inside signed props (see lib/encoding),
// so the mount URL cannot be forged. Mutating methods require the
// HX-Request: true header that HTMX sends.
package cerebro
