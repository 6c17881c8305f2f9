package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/ui"
)

type auditRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, ui.State{Phase: ui.PhaseIdle})
}

// handleFormAudit serves the no-script path: the form posts, the page comes back settled
func (s *Server) handleFormAudit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	controller := ui.NewController(s.auditor)
	state, err := controller.Submit(r.Context(), r.PostForm.Get("url"))
	if err != nil {
		s.logger.Error("form audit rejected", zap.Error(err))
	}

	s.renderPage(w, state)
}

func (s *Server) handleAPIAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	url, ok := audit.NormalizeURL(req.URL)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: audit.Message(audit.ErrEmptyURL)})
		return
	}

	result, err := s.auditor.Analyze(r.Context(), url)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: audit.Message(err)})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetAudits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.GetAllAudits())
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.history.GetAudit(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "audit not found"})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sessions: s.hub.Sessions()})
}

func (s *Server) renderPage(w http.ResponseWriter, state ui.State) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, state); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
