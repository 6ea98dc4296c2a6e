package chiadapter

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohquinton/Cerebro-sub001/internal/app"
)

func text(s string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, s+":"+r.URL.Path)
	})
}

func testRoutes() []app.Route {
	return []app.Route{
		{Method: http.MethodGet, Path: "/page", Handler: text("page")},
		{Method: "*", Path: "/_c/", Prefix: true, Handler: text("component")},
		{Method: http.MethodGet, Path: "/boom", Handler: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})},
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestMountRoutes(t *testing.T) {
	e := New(testRoutes())

	rec := serve(e, http.MethodGet, "/page")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page:/page", rec.Body.String())

	rec = serve(e, http.MethodPost, "/_c/donation-abcd/")
	assert.Equal(t, "component:/_c/donation-abcd/", rec.Body.String())

	assert.Equal(t, http.StatusOK, serve(e, http.MethodHead, "/page").Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/missing").Code)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	e := New(testRoutes(), mark("outer"), mark("inner"))
	serve(e, http.MethodGet, "/page")

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRecover(t *testing.T) {
	e := New(testRoutes())
	assert.Equal(t, http.StatusInternalServerError, serve(e, http.MethodGet, "/boom").Code)
}
