package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gamegen/internal/app"
	"gamegen/internal/util"
)

const maxBodyBytes = 1 << 20

// Error messages returned to callers.
const (
	msgPromptRequired   = "Prompt is required."
	msgInvalidGameCode  = "Invalid Phaser.js code generated."
	msgGenerationFailed = "Failed to generate game code."
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes the game generation HTTP API.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the middleware chain.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/generate-game", s.handleGenerateGame)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateGameRequest struct {
	Prompt string `json:"prompt"`
}

type generateGameResponse struct {
	GameCode string `json:"gameCode"`
}

func (s *Server) handleGenerateGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req generateGameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		// A non-string prompt is rejected rather than coerced to text.
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if s.app == nil {
		writeError(w, http.StatusInternalServerError, msgGenerationFailed)
		return
	}
	logger := util.LoggerFromContext(r.Context())
	code, err := s.app.GenerateGame(r.Context(), req.Prompt)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, generateGameResponse{GameCode: code})
	case errors.Is(err, app.ErrPromptRequired):
		writeError(w, http.StatusBadRequest, msgPromptRequired)
	case errors.Is(err, app.ErrInvalidGameCode):
		logger.Warn("generated output rejected", "reason", "missing_phaser_marker")
		writeError(w, http.StatusInternalServerError, msgInvalidGameCode)
	default:
		logger.Error("error generating game code", "err", err)
		writeError(w, http.StatusInternalServerError, msgGenerationFailed)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
