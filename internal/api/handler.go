// Package api exposes the question gateway over HTTP.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/codegenius/internal/httpserver"
	"github.com/abhisek/codegenius/internal/question"
)

// Response messages for POST /questions/add.
const (
	MsgAdded         = "New Question has been Added"
	MsgAddedFallback = "New Question added to fallback store"
)

const welcomeHTML = "<h1>Welcome to the Interview Question Server Api</h1>"

// maxBodyBytes bounds request bodies read by the add endpoint.
const maxBodyBytes = 1 << 20

// Config wires dependencies for the HTTP handler.
type Config struct {
	Gateway *question.Gateway
	Logger  *slog.Logger
}

// NewHandler builds the question service router.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{gateway: cfg.Gateway, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/", h.handleWelcome).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/questions/add", h.handleAdd).Methods(http.MethodPost)
	r.HandleFunc("/questions/get", h.handleGet).Methods(http.MethodGet)

	return httpserver.Wrap(r, logger)
}

type handler struct {
	gateway *question.Gateway
	logger  *slog.Logger
}

type addRequest struct {
	Question  string `json:"question"`
	TechStack string `json:"techStack"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	CatalogSize int                    `json:"catalogSize"`
	Stats       question.StatsSnapshot `json:"stats"`
}

func (h *handler) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, welcomeHTML)
}

func (h *handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var in addRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&in); err != nil {
		// Anything unparseable is an empty submission.
		if err != io.EOF {
			h.logger.DebugContext(r.Context(), "malformed add body", slog.Any("error", err))
		}
		in = addRequest{}
	}

	res := h.gateway.Add(r.Context(), question.Question{
		Question:  in.Question,
		TechStack: in.TechStack,
	})

	msg := MsgAdded
	if res.Degraded {
		msg = MsgAddedFallback
	}
	writeJSON(w, http.StatusOK, messageResponse{Msg: msg})
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	res := h.gateway.Get(r.Context(), r.URL.Query().Get("techStack"))
	writeJSON(w, http.StatusOK, res.Questions)
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := h.gateway.Stats()
	status := "ok"
	if stats.Degraded() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      status,
		CatalogSize: h.gateway.Catalog().Len(),
		Stats:       stats,
	})
}
