// internal/dashboard/dashboard.go
//
// Startup wrapper around the configuration core.
//
// Context
// -------
// Start is the only consumer of the collaborator contract:
//
//  1. Validate the configuration source; a CRITICAL error aborts.
//  2. Read `server.port` from the resolved configuration.
//  3. Serve the router until ctx is cancelled, then shut down.
//
// The router only carries /healthz and /metrics, behind the access-log and
// security-header middleware.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/discord-dashboard/core/internal/config"
	"github.com/discord-dashboard/core/internal/fault"
	"github.com/discord-dashboard/core/internal/middleware"
	"github.com/discord-dashboard/core/internal/server"
)

const shutdownTimeout = 5 * time.Second

// ConfigSource hands out the resolved configuration.  *config.Provider
// satisfies it.
type ConfigSource interface {
	Get() (*config.Resolved, error)
}

// Validator checks the configuration source before startup.
type Validator interface {
	Validate() error
}

// Reporter routes errors by severity.  *logger.Logger satisfies it.
type Reporter interface {
	Log(err error)
	Handle(err error) error
}

// Dashboard wires validation, configuration, and the listener together.
type Dashboard struct {
	source    ConfigSource
	validator Validator
	log       Reporter
	serve     func(*http.Server) error
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithServe replaces (*http.Server).ListenAndServe.
func WithServe(fn func(*http.Server) error) Option {
	return func(d *Dashboard) { d.serve = fn }
}

// New returns a Dashboard.
func New(src ConfigSource, v Validator, log Reporter, opts ...Option) *Dashboard {
	d := &Dashboard{
		source:    src,
		validator: v,
		log:       log,
		serve:     (*http.Server).ListenAndServe,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handler returns the HTTP router.
func (d *Dashboard) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AccessLog, middleware.Security)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start validates, resolves, and serves until ctx is done.  Every
// returned error has already been logged.
func (d *Dashboard) Start(ctx context.Context) error {
	if err := d.log.Handle(d.validator.Validate()); err != nil {
		return err
	}

	res, err := d.source.Get()
	if err != nil {
		d.log.Log(err)
		return err
	}

	srv := server.New(res.Config().Server.Port, d.Handler())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel() // a listener that stops on its own ends the shutdown wait
		if err := d.serve(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, release := context.WithTimeout(context.Background(), shutdownTimeout)
		defer release()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		err = fault.Internal(
			"Dashboard listener on "+srv.Addr+" stopped: "+err.Error(),
			fault.Details{Priority: fault.Critical},
		).Wrap(err)
		d.log.Log(err)
		return err
	}
	return nil
}
