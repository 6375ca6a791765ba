// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// The dashboard binds the port from `server.port` and nothing else; this
// helper keeps the listener defaults in one place:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
//

package server

import (
	"net"
	"net/http"
	"strconv"
	"time"
)

// New constructs an *http.Server listening on every interface at port.
func New(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(port)),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
