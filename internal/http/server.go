// Package http exposes the services over a localhost JSON API: one
// endpoint per view plus the backup lifecycle. Handlers validate input at
// the boundary and hold no state of their own.
package http

import (
	"net/http"

	"novaspend/internal/middleware/ratelimit"
	"novaspend/internal/middleware/security"
	"novaspend/internal/middleware/trace"
	"novaspend/internal/services"
)

type Server struct {
	http.Server
	ledger   *services.Ledger
	stats    *services.Stats
	settings *services.Settings
	backup   *services.Backup
	limiter  *ratelimit.Limiter
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, requestsPerMinute int, ledger *services.Ledger, stats *services.Stats, settings *services.Settings, backup *services.Backup) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:   ledger,
		stats:    stats,
		settings: settings,
		backup:   backup,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: requestsPerMinute}),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/stats/balance", s.handleBalance)
	mux.HandleFunc("/api/stats/budget", s.handleBudget)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/settings/theme", s.handleTheme)
	mux.HandleFunc("/api/backup", s.handleBackup)
	mux.HandleFunc("/api/backup/clear", s.handleClear)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware()

	var handler http.Handler = mux
	handler = s.limiter.Middleware(trace.ClientIP)(handler)
	handler = tracer.Middleware(handler)
	handler = headers.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// CloseLimiter stops the rate limiter's cleanup loop.
func (s *Server) CloseLimiter() {
	s.limiter.Shutdown()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
