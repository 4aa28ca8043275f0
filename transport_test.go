package vesync

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTransportDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("tk") != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":0,"result":{"total":1}}`)
	}))
	defer srv.Close()

	tr := newHTTPTransport(srv.URL)
	r := tr.Call("/cloud/v1/test", "POST", map[string]interface{}{"a": "b"}, map[string]string{"tk": "tok"})
	if r == nil {
		t.Fatal("expected a decoded body")
	}
	if code, _ := asFloat(r["code"]); code != 0 {
		t.Errorf("code = %v, want 0", r["code"])
	}
}

func TestTransportNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := newHTTPTransport(srv.URL)
	if r := tr.Call("/anything", "GET", nil, nil); r != nil {
		t.Errorf("non-200 must yield nil, got %+v", r)
	}
}

func TestTransportBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))
	defer srv.Close()

	tr := newHTTPTransport(srv.URL)
	if r := tr.Call("/anything", "GET", nil, nil); r != nil {
		t.Errorf("undecodable body must yield nil, got %+v", r)
	}
}

func TestTransportConnectionRefused(t *testing.T) {
	// grab a port and close it so nothing is listening
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := newHTTPTransport(url)
	if r := tr.Call("/anything", "GET", nil, nil); r != nil {
		t.Errorf("network failure must yield nil, got %+v", r)
	}
}
