package rpc

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"explora/internal/guide"
	"explora/internal/guide/session"
)

// EditorSessionHandler streams mutation protocol state over a websocket and
// accepts mutations and decisions inline. Dropping the connection while a
// decision prompt is open counts as rejecting it.
type EditorSessionHandler struct {
	sessions *session.Manager
}

func NewEditorSessionHandler(sessions *session.Manager) *EditorSessionHandler {
	return &EditorSessionHandler{sessions: sessions}
}

const (
	editorWSWriteWait = 10 * time.Second
	editorWSPongWait  = 60 * time.Second
	editorWSPingEvery = (editorWSPongWait * 9) / 10
)

var editorWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type editorWSInbound struct {
	Type     string `json:"type"`
	Kind     string `json:"kind,omitempty"`
	TargetID string `json:"targetId,omitempty"`
	Payload  string `json:"payload,omitempty"`
	Accept   bool   `json:"accept,omitempty"`
}

type editorWSOutbound struct {
	Type        string          `json:"type"`
	SessionID   string          `json:"sessionId,omitempty"`
	ObjectiveID string          `json:"objectiveId,omitempty"`
	State       string          `json:"state,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Committed   bool            `json:"committed,omitempty"`
	Closed      bool            `json:"closed,omitempty"`
	Sections    []guide.Section `json:"sections,omitempty"`
	Code        string          `json:"code,omitempty"`
	Message     string          `json:"message,omitempty"`
}

func (h *EditorSessionHandler) HandleEditorSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	s, ok := h.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "unknown editor session", http.StatusNotFound)
		return
	}

	conn, err := editorWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	defer s.AbandonPending()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(editorWSPongWait)); err != nil {
		log.Printf("editor ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(editorWSPongWait))
	})

	writeCh := make(chan editorWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(editorWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(editorWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(editorWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	go func() {
		for snap := range s.Subscribe(ctx) {
			pushEditorWS(writeCh, editorWSOutbound{
				Type:        "state",
				SessionID:   snap.SessionID,
				ObjectiveID: snap.ObjectiveID,
				State:       string(snap.State),
				Reason:      snap.Reason,
				Closed:      snap.Closed,
			})
		}
	}()

	for {
		var in editorWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushEditorWS(writeCh, editorWSOutbound{Type: "pong"})
		case "mutate":
			outcome, err := s.Submit(ctx, guide.MutationRequest{
				Kind:     guide.MutationKind(strings.TrimSpace(in.Kind)),
				TargetID: strings.TrimSpace(in.TargetID),
				Payload:  in.Payload,
			})
			if err != nil {
				pushEditorWS(writeCh, editorWSErr(err))
				continue
			}
			pushEditorWS(writeCh, editorWSOutbound{
				Type:      "mutate_ack",
				SessionID: sessionID,
				Committed: outcome.Committed,
				Reason:    outcome.Reason,
				Sections:  outcome.Sections,
			})
		case "decide":
			outcome, err := s.Decide(ctx, in.Accept)
			if err != nil {
				pushEditorWS(writeCh, editorWSErr(err))
				continue
			}
			pushEditorWS(writeCh, editorWSOutbound{
				Type:      "decide_ack",
				SessionID: sessionID,
				Committed: outcome.Committed,
				Sections:  outcome.Sections,
			})
		case "abandon":
			s.AbandonPending()
			pushEditorWS(writeCh, editorWSOutbound{
				Type:      "abandon_ack",
				SessionID: sessionID,
			})
		case "close":
			h.sessions.Close(sessionID)
			pushEditorWS(writeCh, editorWSOutbound{
				Type:      "close_ack",
				SessionID: sessionID,
				Closed:    true,
			})
		default:
			pushEditorWS(writeCh, editorWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + in.Type,
			})
		}
	}
}

func editorWSErr(err error) editorWSOutbound {
	code := "internal"
	switch err {
	case session.ErrDecisionPending, session.ErrBusy, session.ErrNoPendingDecision:
		code = "failed_precondition"
	case session.ErrClosed:
		code = "not_found"
	}
	return editorWSOutbound{Type: "error", Code: code, Message: err.Error()}
}

func pushEditorWS(writeCh chan editorWSOutbound, out editorWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
