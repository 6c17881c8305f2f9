package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BetterCallFirewall/ShopAudit/internal/config"
	"github.com/BetterCallFirewall/ShopAudit/internal/storage"
	"github.com/BetterCallFirewall/ShopAudit/internal/ui"
	"github.com/BetterCallFirewall/ShopAudit/internal/websocket"
)

const shutdownTimeout = 5 * time.Second

type historyI interface {
	GetAllAudits() []*storage.AuditRecord
	GetAudit(id string) (*storage.AuditRecord, bool)
}

type Server struct {
	config   config.WebConfig
	auditor  ui.Auditor
	history  historyI
	renderer *ui.Renderer
	hub      *websocket.Hub
	logger   *zap.Logger
	server   *http.Server
}

// NewServer wires the routes and starts the websocket hub. ctx bounds the hub and
// every live audit. history backs the read-only audit list.
func NewServer(ctx context.Context, cfg config.WebConfig, auditor ui.Auditor, history historyI, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}

	hub := websocket.NewHub(ctx, auditor, renderer, logger.Named("ws"))
	go hub.Run()

	s := &Server{
		config:   cfg,
		auditor:  auditor,
		history:  history,
		renderer: renderer,
		hub:      hub,
		logger:   logger,
	}

	// No write timeout: an audit runs until the model answers
	s.server = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /audit", s.handleFormAudit)

	// API endpoints
	mux.HandleFunc("POST /api/audit", s.handleAPIAudit)
	mux.HandleFunc("GET /api/audits", s.handleGetAudits)
	mux.HandleFunc("GET /api/audits/{id}", s.handleGetAudit)

	// WebSocket endpoint
	mux.HandleFunc("GET /ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	return RequestLogger(s.logger, CORS(mux))
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info("web server listening", zap.String("addr", s.config.ListenAddr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
