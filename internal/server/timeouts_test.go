package server

import (
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := http.NotFoundHandler()
	srv := New(8080, h)

	if srv.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", srv.Addr)
	}
	if srv.ReadTimeout != 10*time.Second || srv.WriteTimeout != 15*time.Second || srv.IdleTimeout != 60*time.Second {
		t.Fatalf("timeouts = %v/%v/%v", srv.ReadTimeout, srv.WriteTimeout, srv.IdleTimeout)
	}
	if srv.Handler == nil {
		t.Fatalf("handler not set")
	}
}
