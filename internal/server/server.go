package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"siteview/internal/broadcast"
	"siteview/internal/logging"
	"siteview/internal/viewer"
)

// Options configures a Server.
type Options struct {
	Bind   string
	Token  string
	Title  string
	Logger *slog.Logger
}

// Server is the HTTP front end for one App.
type Server struct {
	bind   string
	token  string
	title  string
	logger *slog.Logger
	app    *viewer.App
	hub    *broadcast.Hub

	upgrader websocket.Upgrader
	mux      *http.ServeMux
	listener net.Listener
	server   *http.Server
	ctx      context.Context
}

// New builds the server and its routes. Nothing listens until Start.
func New(app *viewer.App, opts Options) *Server {
	logger := logging.NewComponentLogger(opts.Logger, "api-server")
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Worker Activity Viewer"
	}
	s := &Server{
		bind:   strings.TrimSpace(opts.Bind),
		token:  opts.Token,
		title:  title,
		logger: logger,
		app:    app,
		hub:    broadcast.NewHub(opts.Logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameHostOrigin,
		},
		mux: http.NewServeMux(),
		ctx: context.Background(),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/state", s.handleState)
	s.mux.HandleFunc("/api/playback/", authMiddleware(s.token, s.handlePlayback))
	s.mux.HandleFunc("/api/zoom", authMiddleware(s.token, s.handleZoom))
	s.mux.HandleFunc("/api/seek", authMiddleware(s.token, s.handleSeek))
	s.mux.HandleFunc("/api/hover", authMiddleware(s.token, s.handleHover))
	s.mux.HandleFunc("/api/cell", authMiddleware(s.token, s.handleCell))
	s.mux.HandleFunc("/api/tooltip", authMiddleware(s.token, s.handleTooltip))
	s.mux.HandleFunc("/api/resize", authMiddleware(s.token, s.handleResize))
	s.mux.HandleFunc("/api/legend", s.handleLegend)
	s.mux.HandleFunc("/api/frames/", s.handleFrame)
	s.mux.HandleFunc("/api/spatial/ops", s.handleSpatialOps)
	s.mux.HandleFunc("/render/", s.handleRender)
	s.mux.HandleFunc("/ws", queryTokenMiddleware(s.token, s.handleWebsocket))

	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Hub returns the websocket hub.
func (s *Server) Hub() *broadcast.Hub {
	return s.hub
}

// Start listens on the bind address and serves until ctx is cancelled. The
// hub loop and snapshot relay share the same lifetime.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.startBackground(ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) startBackground(ctx context.Context) {
	s.ctx = ctx
	go s.hub.Run(ctx)
	go s.relay(ctx)
}

// relay forwards every published snapshot to websocket clients.
func (s *Server) relay(ctx context.Context) {
	ch, cancel := s.app.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := s.hub.BroadcastJSON(message{Type: messageSnapshot, Data: snap}); err != nil {
				s.logger.Warn("snapshot broadcast failed", logging.Error(err))
			}
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.EqualFold(host, r.Host)
}
