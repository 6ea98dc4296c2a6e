// Package subscription renders the subscription plan picker. Like donation
// it is only loaded once a gate becomes interactive.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	cerebro "github.com/ohquinton/Cerebro-sub001"
)

// Interval is a billing period.
type Interval string

const (
	Monthly Interval = "monthly"
	Yearly  Interval = "yearly"
)

// Plan is one subscription tier. Price is in minor currency units.
type Plan struct {
	ID       string
	Name     string
	Interval Interval
	Price    int
}

// DefaultPlans are the built-in tiers.
var DefaultPlans = []Plan{
	{ID: "supporter-monthly", Name: "Supporter", Interval: Monthly, Price: 500},
	{ID: "patron-monthly", Name: "Patron", Interval: Monthly, Price: 2000},
	{ID: "supporter-yearly", Name: "Supporter", Interval: Yearly, Price: 5000},
	{ID: "patron-yearly", Name: "Patron", Interval: Yearly, Price: 20000},
}

// ErrNoPlans is returned by Load when Options carries an empty plan list.
var ErrNoPlans = errors.New("subscription: no plans")

// Options configures the plan picker.
type Options struct {
	PublishableKey string
	// Plans overrides DefaultPlans when non-nil.
	Plans []Plan
}

// Load returns a gate loader for the plan picker.
func Load(opts Options) cerebro.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		plans := opts.Plans
		if plans == nil {
			plans = DefaultPlans
		}
		if len(plans) == 0 {
			return nil, ErrNoPlans
		}
		seen := make(map[string]bool, len(plans))
		for _, p := range plans {
			if p.ID == "" || seen[p.ID] {
				return nil, fmt.Errorf("subscription: duplicate or empty plan id %q", p.ID)
			}
			if p.Interval != Monthly && p.Interval != Yearly {
				return nil, fmt.Errorf("subscription: plan %s: unknown interval %q", p.ID, p.Interval)
			}
			seen[p.ID] = true
		}
		return View(opts.PublishableKey, plans), nil
	}
}

// View renders plans grouped by interval, monthly first.
func View(publishableKey string, plans []Plan) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section data-feature="subscription" class="subscription">`)
		b.WriteString(`<h1>Become a member</h1>`)
		b.WriteString(`<form class="subscription-form">`)
		for _, iv := range []Interval{Monthly, Yearly} {
			group := byInterval(plans, iv)
			if len(group) == 0 {
				continue
			}
			b.WriteString(`<fieldset class="subscription-plans" data-interval="` + string(iv) + `">`)
			b.WriteString(`<legend>` + label(iv) + `</legend>`)
			for _, p := range group {
				b.WriteString(`<label class="subscription-plan"><input type="radio" name="plan" value="` +
					templ.EscapeString(p.ID) + `"> ` + templ.EscapeString(p.Name) + ` ` +
					FormatPrice(p.Price) + `/` + short(iv) + `</label>`)
			}
			b.WriteString(`</fieldset>`)
		}
		b.WriteString(`<div id="payment-element" data-publishable-key="` + templ.EscapeString(publishableKey) + `"></div>`)
		b.WriteString(`<button type="submit">Subscribe</button>`)
		b.WriteString(`</form></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FormatPrice renders minor units as "$5" or "$5.50".
func FormatPrice(minor int) string {
	if minor%100 == 0 {
		return fmt.Sprintf("$%d", minor/100)
	}
	return fmt.Sprintf("$%d.%02d", minor/100, minor%100)
}

func byInterval(plans []Plan, iv Interval) []Plan {
	var out []Plan
	for _, p := range plans {
		if p.Interval == iv {
			out = append(out, p)
		}
	}
	return out
}

func label(iv Interval) string {
	if iv == Yearly {
		return "Yearly"
	}
	return "Monthly"
}

func short(iv Interval) string {
	if iv == Yearly {
		return "yr"
	}
	return "mo"
}
