package cerebro

// SwapMode is an HTMX hx-swap strategy.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag (outerHTML).
	// Gates use it so the interactive render replaces the trigger element.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents (innerHTML).
	SwapInner SwapMode = "innerHTML"
)

// Trigger is an HTMX hx-trigger value that fires a gate's mount request.
type Trigger string

const (
	// TriggerLoad fires once, as soon as the element is processed in a live page.
	TriggerLoad Trigger = "load"

	// TriggerIntersect fires once, when the element first scrolls into view.
	TriggerIntersect Trigger = "intersect once"
)
