package cerebro

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/a-h/templ"
	"github.com/ohquinton/Cerebro-sub001/lib/encoding"
)

// Component is the routing base embedded by gates.
//
// Each component receives a deterministic URL prefix derived from its name
// and the source location that created it, so two gates with the same name
// still get distinct routes.
type Component struct {
	name      string
	prefix    string
	sensitive bool
	encoder   *Encoder
}

func newComponent(name string, skip int) *Component {
	return &Component{
		name:   name,
		prefix: "/_c/" + name + "-" + componentHash(name, skip+1),
	}
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
func (c *Component) Prefix() string {
	return c.prefix
}

// HXPrefix implements HXComponent.
func (c *Component) HXPrefix() string {
	return c.prefix
}

// IsSensitive returns whether props are encrypted rather than signed.
func (c *Component) IsSensitive() bool {
	return c.sensitive
}

// SetEncoder sets the props encoder (called by the registry).
func (c *Component) SetEncoder(enc *Encoder) {
	c.encoder = enc
}

// Encoder returns the props encoder, nil until registered.
func (c *Component) Encoder() *Encoder {
	return c.encoder
}

// buildURL returns the component's GET URL with props sealed into ?p=.
func (c *Component) buildURL(props encoding.Encodable) (string, error) {
	if c.encoder == nil {
		return "", fmt.Errorf("cerebro: component %q is not registered", c.name)
	}
	token, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return "", err
	}
	return c.prefix + "/?p=" + token, nil
}

// decodeProps reads and verifies the ?p= token of r into props.
func (c *Component) decodeProps(r *http.Request, props encoding.Decodable) error {
	if c.encoder == nil {
		return fmt.Errorf("cerebro: component %q is not registered", c.name)
	}
	err := c.encoder.Decode(r.URL.Query().Get("p"), c.sensitive, props)
	return wrapEncodingError(err)
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		// Base filename only, for portability across build machines.
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// attr is an HTML attribute. Order is preserved on output.
type attr struct {
	name, value string
}

func writeOpenTag(w io.Writer, tag string, attrs []attr) error {
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	for _, a := range attrs {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.name, html.EscapeString(a.value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">")
	return err
}

// wrap renders inner inside a <div> carrying attrs.
func wrap(ctx context.Context, w io.Writer, attrs []attr, inner templ.Component) error {
	if err := writeOpenTag(w, "div", attrs); err != nil {
		return err
	}
	if inner != nil {
		if err := inner.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}

// triggerAttrs are the HTMX attributes that make an element request url
// once trigger fires and replace itself with the response.
func triggerAttrs(url string, trigger Trigger) []attr {
	return []attr{
		{"hx-get", url},
		{"hx-trigger", string(trigger)},
		{"hx-swap", string(SwapOuter)},
	}
}
