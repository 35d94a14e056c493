package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server serves single-player Blackjack games over WebSocket. Every
// connection gets its own round and session; nothing is shared between them.
type Server struct {
	logger         *log.Logger
	clock          quartz.Clock
	seed           int64
	allowedOrigins []string
	roundOpts      []game.RoundOption
	results        func(session string, s game.Snapshot)

	upgrader    websocket.Upgrader
	handler     http.Handler
	connections map[*Connection]bool
	games       atomic.Int64
	mu          sync.RWMutex
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for dealer cadence in every game
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithSeed makes shoes reproducible; game n is seeded with seed+n.
// Zero seeds from the time.
func WithSeed(seed int64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithAllowedOrigins restricts browser origins. "*" allows any.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithRoundOptions appends options applied to every new round
func WithRoundOptions(opts ...game.RoundOption) Option {
	return func(s *Server) { s.roundOpts = append(s.roundOpts, opts...) }
}

// WithResults registers fn to receive the final snapshot of every round
// played on any connection.
func WithResults(fn func(session string, s game.Snapshot)) Option {
	return func(s *Server) { s.results = fn }
}

// NewServer creates a new WebSocket server
func NewServer(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		logger:         logger.WithPrefix("server"),
		clock:          quartz.NewReal(),
		allowedOrigins: []string{"*"},
		connections:    make(map[*Connection]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed = randutil.Resolve(s.seed)

	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Use(s.logRequests)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then closes every game.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.closeAll()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ConnectionCount returns the number of live games
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close() // Ignore close errors during shutdown
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.allowedOrigins, "*") {
		return true
	}
	return slices.Contains(s.allowedOrigins, origin)
}

// handleWebSocket upgrades the request and starts a fresh game on it
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	n := s.games.Add(1)
	client := newConnection(uuid.NewString(), ws, s.logger)

	opts := []game.RoundOption{
		game.WithClock(s.clock),
		game.WithLogger(client.logger),
		game.WithObserver(client.observe),
	}
	if s.results != nil {
		id := client.ID()
		opts = append(opts, game.WithObserver(func(snap game.Snapshot) {
			if snap.Phase == game.PhaseEnd {
				s.results(id, snap)
			}
		}))
	}
	opts = append(opts, s.roundOpts...)
	client.round = game.NewRound(randutil.New(s.seed+n), opts...)

	s.mu.Lock()
	s.connections[client] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", client.ID(), "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", client.ID(), "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request", "method", r.Method, "uri", r.RequestURI, "duration", time.Since(start))
	})
}
