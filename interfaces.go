package cerebro

import "net/http"

// HXComponent is a component the Registry can route requests to.
//
// HXPrefix returns the unique URL prefix for the component. HXServeHTTP
// handles every request under that prefix; a returned error is passed to
// the registry's OnError and nothing must have been written to w.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request) error
}

// encoderSetter is implemented by components that seal props.
type encoderSetter interface {
	SetEncoder(*Encoder)
}
