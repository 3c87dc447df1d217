package rpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	cacheguide "explora/internal/cache/guide"
	"explora/internal/guide"
	"explora/internal/guide/session"
)

type GetGuideRequest struct {
	ObjectiveID string `json:"objective_id"`
}

type GetGuideResponse struct {
	Sections []guide.Section `json:"sections"`
}

type OpenEditorSessionRequest struct {
	ObjectiveID string `json:"objective_id"`
}

type OpenEditorSessionResponse struct {
	SessionID string `json:"session_id"`
}

type MutateGuideRequest struct {
	SessionID string             `json:"session_id"`
	Kind      guide.MutationKind `json:"kind"`
	TargetID  string             `json:"target_id,omitempty"`
	Payload   string             `json:"payload,omitempty"`
}

type MutationOutcomeResponse struct {
	Committed bool            `json:"committed"`
	Reason    string          `json:"reason,omitempty"`
	Sections  []guide.Section `json:"sections,omitempty"`
	State     session.State   `json:"state"`
}

type DecideMutationRequest struct {
	SessionID string `json:"session_id"`
	Accept    bool   `json:"accept"`
}

type CloseEditorSessionRequest struct {
	SessionID string `json:"session_id"`
}

type CloseEditorSessionResponse struct {
	Closed bool `json:"closed"`
}

// GuideHandler serves discussion guide reads through the cache and routes
// edits through per-session mutation protocol state.
type GuideHandler struct {
	reads    *cacheguide.CachedStore
	sessions *session.Manager
}

func NewGuideHandler(reads *cacheguide.CachedStore, sessions *session.Manager) *GuideHandler {
	return &GuideHandler{reads: reads, sessions: sessions}
}

func (h *GuideHandler) GetGuide(ctx context.Context, req *connect.Request[GetGuideRequest]) (*connect.Response[GetGuideResponse], error) {
	objectiveID := strings.TrimSpace(req.Msg.ObjectiveID)
	if objectiveID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("objective_id is required"))
	}
	sections, err := h.reads.Guide(ctx, objectiveID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&GetGuideResponse{Sections: sections}), nil
}

func (h *GuideHandler) OpenEditorSession(_ context.Context, req *connect.Request[OpenEditorSessionRequest]) (*connect.Response[OpenEditorSessionResponse], error) {
	s, err := h.sessions.Open(req.Msg.ObjectiveID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&OpenEditorSessionResponse{SessionID: s.ID()}), nil
}

func (h *GuideHandler) MutateGuide(ctx context.Context, req *connect.Request[MutateGuideRequest]) (*connect.Response[MutationOutcomeResponse], error) {
	s, ok := h.sessions.Get(strings.TrimSpace(req.Msg.SessionID))
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("unknown editor session"))
	}
	outcome, err := s.Submit(ctx, guide.MutationRequest{
		Kind:     req.Msg.Kind,
		TargetID: req.Msg.TargetID,
		Payload:  req.Msg.Payload,
	})
	if err != nil {
		return nil, mapSessionError(err)
	}
	return connect.NewResponse(outcomeResponse(outcome, s)), nil
}

func (h *GuideHandler) DecideMutation(ctx context.Context, req *connect.Request[DecideMutationRequest]) (*connect.Response[MutationOutcomeResponse], error) {
	s, ok := h.sessions.Get(strings.TrimSpace(req.Msg.SessionID))
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("unknown editor session"))
	}
	outcome, err := s.Decide(ctx, req.Msg.Accept)
	if err != nil {
		return nil, mapSessionError(err)
	}
	return connect.NewResponse(outcomeResponse(outcome, s)), nil
}

func (h *GuideHandler) CloseEditorSession(_ context.Context, req *connect.Request[CloseEditorSessionRequest]) (*connect.Response[CloseEditorSessionResponse], error) {
	h.sessions.Close(strings.TrimSpace(req.Msg.SessionID))
	return connect.NewResponse(&CloseEditorSessionResponse{Closed: true}), nil
}

func outcomeResponse(outcome session.Outcome, s *session.Session) *MutationOutcomeResponse {
	return &MutationOutcomeResponse{
		Committed: outcome.Committed,
		Reason:    outcome.Reason,
		Sections:  outcome.Sections,
		State:     s.State(),
	}
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrDecisionPending),
		errors.Is(err, session.ErrBusy):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, session.ErrNoPendingDecision):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, session.ErrClosed):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func (h *GuideHandler) Mount(mux *http.ServeMux) {
	mux.Handle(GetGuideProcedure, connect.NewUnaryHandler(
		GetGuideProcedure, h.GetGuide, handlerOptions()...))
	mux.Handle(OpenEditorSessionProcedure, connect.NewUnaryHandler(
		OpenEditorSessionProcedure, h.OpenEditorSession, handlerOptions()...))
	mux.Handle(MutateGuideProcedure, connect.NewUnaryHandler(
		MutateGuideProcedure, h.MutateGuide, handlerOptions()...))
	mux.Handle(DecideMutationProcedure, connect.NewUnaryHandler(
		DecideMutationProcedure, h.DecideMutation, handlerOptions()...))
	mux.Handle(CloseEditorSessionProcedure, connect.NewUnaryHandler(
		CloseEditorSessionProcedure, h.CloseEditorSession, handlerOptions()...))
}
