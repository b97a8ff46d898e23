package feedback

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/codegenius/internal/httpserver"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the feedback service router.
func NewHandler(svc *Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{svc: svc, logger: logger}

	r := mux.NewRouter()
	bot := r.PathPrefix("/bot").Subrouter()
	bot.HandleFunc("/chat", h.handleChat).Methods(http.MethodPost)

	return httpserver.Wrap(r, logger)
}

type handler struct {
	svc    *Service
	logger *slog.Logger
}

// chatRequest accepts any JSON value for its fields; non-strings are used
// in their JSON form.
type chatRequest struct {
	Prompt   json.RawMessage `json:"prompt"`
	Question json.RawMessage `json:"question"`
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&in); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body", Message: err.Error()})
		return
	}

	res, err := h.svc.Evaluate(r.Context(), Request{
		Prompt:   rawString(in.Prompt),
		Question: rawString(in.Question),
	})
	switch {
	case errors.Is(err, ErrEmptyAnswer):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MsgEmptyAnswer})
	case err != nil:
		h.logger.ErrorContext(r.Context(), "feedback provider failed", slog.Any("error", err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Feedback provider error", Message: err.Error()})
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// rawString decodes a JSON string, or returns other JSON values verbatim.
// null and absent values are empty.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encode_failed"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
