package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// TraceHandler receives client-side trace events so frontend failures show
// up next to server logs during debugging.
type TraceHandler struct{}

func NewTraceHandler() *TraceHandler {
	return &TraceHandler{}
}

func (h *TraceHandler) HandleFrontendTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Timestamp string         `json:"timestamp"`
		Stage     string         `json:"stage"`
		Level     string         `json:"level"`
		Fields    map[string]any `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	stage := strings.TrimSpace(in.Stage)
	if stage == "" {
		http.Error(w, "stage is required", http.StatusBadRequest)
		return
	}
	level := strings.TrimSpace(in.Level)
	if level == "" {
		level = "info"
	}
	log.Printf("frontend trace [%s] stage=%s fields=%v ts=%s", level, stage, in.Fields, strings.TrimSpace(in.Timestamp))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok": true,
	})
}
