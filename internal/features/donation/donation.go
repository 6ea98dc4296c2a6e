// Package donation renders the donation form. It is loaded behind a
// hydration gate, never during the first render.
package donation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	cerebro "github.com/ohquinton/Cerebro-sub001"
)

// DefaultAmounts are the preset donation amounts, in whole currency units.
var DefaultAmounts = []int{5, 10, 25, 50, 100}

// ErrNoAmounts is returned by Load when Options carries an empty preset list.
var ErrNoAmounts = errors.New("donation: no preset amounts")

// Options configures the donation form.
type Options struct {
	// PublishableKey is passed to the payment mount point as is.
	PublishableKey string
	// Amounts overrides DefaultAmounts when non-nil.
	Amounts []int
	// Currency is shown next to amounts. Defaults to "$".
	Currency string
}

// Load returns a gate loader for the donation form.
func Load(opts Options) cerebro.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		amounts := opts.Amounts
		if amounts == nil {
			amounts = DefaultAmounts
		}
		if len(amounts) == 0 {
			return nil, ErrNoAmounts
		}
		for _, a := range amounts {
			if a <= 0 {
				return nil, fmt.Errorf("donation: invalid amount %d", a)
			}
		}
		currency := opts.Currency
		if currency == "" {
			currency = "$"
		}
		return View(opts.PublishableKey, currency, amounts), nil
	}
}

// View renders the form for the given amounts.
func View(publishableKey, currency string, amounts []int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section data-feature="donation" class="donation">`)
		b.WriteString(`<h1>Support the project</h1>`)
		b.WriteString(`<form class="donation-form">`)
		b.WriteString(`<fieldset class="donation-amounts"><legend>Choose an amount</legend>`)
		for i, a := range amounts {
			v := strconv.Itoa(a)
			b.WriteString(`<label class="donation-amount"><input type="radio" name="amount" value="` + v + `"`)
			if i == 0 {
				b.WriteString(` checked`)
			}
			b.WriteString(`> ` + templ.EscapeString(currency) + v + `</label>`)
		}
		b.WriteString(`</fieldset>`)
		b.WriteString(`<label class="donation-custom">Other amount <input type="number" name="custom_amount" min="1" step="1"></label>`)
		b.WriteString(`<div id="payment-element" data-publishable-key="` + templ.EscapeString(publishableKey) + `"></div>`)
		b.WriteString(`<button type="submit">Donate</button>`)
		b.WriteString(`</form></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
