// Package server assembles the HTTP handler that serves every iDine service.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/idine/internal/auth"
	"github.com/mmynk/idine/internal/catalog"
	"github.com/mmynk/idine/internal/events"
	"github.com/mmynk/idine/internal/metrics"
	"github.com/mmynk/idine/internal/middleware"
	"github.com/mmynk/idine/internal/order"
	"github.com/mmynk/idine/internal/receipt"
	"github.com/mmynk/idine/internal/service"
	"github.com/mmynk/idine/internal/storage"
	"github.com/mmynk/idine/pkg/api"
)

// Options configures NewHandler.
type Options struct {
	// Store is the primary database.
	Store storage.Store
	// Prefs overrides where preferences live. Defaults to Store.
	Prefs storage.PreferenceStore

	Publisher  events.Publisher
	Metrics    *metrics.Metrics
	JWT        *auth.JWTManager
	Logger     *slog.Logger
	ClearDelay time.Duration

	// AllowedOrigins are the CORS origins; "*" allows any.
	AllowedOrigins []string
}

// NewHandler wires the services, health and metrics endpoints behind CORS
// and h2c. It returns the order session registry so callers can observe it.
func NewHandler(opts Options) (http.Handler, *order.Registry) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prefs := opts.Prefs
	if prefs == nil {
		prefs = opts.Store
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	catalogs := catalog.NewLoader()
	sessions := order.NewRegistry(opts.Store.ListOrders)
	authenticator := auth.NewPasswordAuthenticator(opts.Store)

	logging := middleware.LoggingInterceptor(logger, m)
	required := connect.WithInterceptors(middleware.RequireAuth(opts.JWT), logging)
	optional := connect.WithInterceptors(middleware.OptionalAuth(opts.JWT), logging)

	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	mount := func(path string, h http.Handler) {
		r.PathPrefix(path).Handler(h)
	}
	mount(api.NewMenuServiceHandler(service.NewMenuService(catalogs, prefs, logger), optional))
	mount(api.NewOrderServiceHandler(service.NewOrderService(service.OrderServiceDeps{
		Sessions:   sessions,
		Catalogs:   catalogs,
		Prefs:      prefs,
		History:    opts.Store,
		Publisher:  opts.Publisher,
		Receipts:   receipt.QRGenerator{Size: receipt.DefaultSize},
		Metrics:    m,
		Logger:     logger,
		ClearDelay: opts.ClearDelay,
	}), required))
	mount(api.NewPreferenceServiceHandler(service.NewPreferenceService(prefs, logger), required))
	mount(api.NewAuthServiceHandler(service.NewAuthService(authenticator, opts.JWT, sessions, logger), optional))

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	})

	// h2c serves HTTP/2 without TLS for gRPC-compatible clients.
	return h2c.NewHandler(c.Handler(r), &http2.Server{}), sessions
}

// requestLogger logs every HTTP request at debug level. RPC outcomes are
// logged by middleware.LoggingInterceptor.
func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
