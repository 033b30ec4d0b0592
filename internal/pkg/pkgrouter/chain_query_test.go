package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestChainOrder(t *testing.T) {
	order := make([]string, 0, 3)

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("mw1"), mw("mw2"))

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if !reflect.DeepEqual(order, []string{"mw1", "mw2", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "/x?file_id=abc", want: "abc"},
		{url: "/x?fileId=legacy", want: "legacy"},
		{url: "/x?file_id=new&fileId=legacy", want: "new"},
		{url: "/x?file_id=%20%20&fileId=legacy", want: "legacy"},
		{url: "/x", want: ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := Query(req, "file_id", "fileId"); got != tt.want {
			t.Fatalf("Query(%s) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
