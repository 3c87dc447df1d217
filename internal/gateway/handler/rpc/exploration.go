package rpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"explora/internal/gateway/repository/exploration"
	"explora/internal/wizard"
)

type UpsertExplorationRequest struct {
	ObjectiveID      string `json:"objective_id"`
	WorkspaceID      string `json:"workspace_id,omitempty"`
	Title            string `json:"title,omitempty"`
	ResearchApproach string `json:"research_approach,omitempty"`
}

type ExplorationResponse struct {
	Exploration exploration.State `json:"exploration"`
}

type GetExplorationRequest struct {
	ObjectiveID string `json:"objective_id"`
}

// ExplorationHandler manages the per-objective exploration record. Writing
// a recognized research approach also pins it in the approach store so
// stage resolution stays stable once a methodology is chosen.
type ExplorationHandler struct {
	store      *exploration.Store
	approaches wizard.ApproachStore
}

func NewExplorationHandler(store *exploration.Store, approaches wizard.ApproachStore) *ExplorationHandler {
	return &ExplorationHandler{store: store, approaches: approaches}
}

func (h *ExplorationHandler) UpsertExploration(ctx context.Context, req *connect.Request[UpsertExplorationRequest]) (*connect.Response[ExplorationResponse], error) {
	in := req.Msg
	if strings.TrimSpace(in.ObjectiveID) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("objective_id is required"))
	}
	st, err := h.store.Update(ctx, in.ObjectiveID, func(cur exploration.State) exploration.State {
		if v := strings.TrimSpace(in.WorkspaceID); v != "" {
			cur.WorkspaceID = v
		}
		if v := strings.TrimSpace(in.Title); v != "" {
			cur.Title = v
		}
		if v := strings.TrimSpace(in.ResearchApproach); v != "" {
			cur.ResearchApproach = v
		}
		return cur
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if h.approaches != nil {
		if a := wizard.ParseApproach(st.ResearchApproach); a != wizard.ApproachUnset {
			h.approaches.SetApproach(st.ObjectiveID, a)
		}
	}
	return connect.NewResponse(&ExplorationResponse{Exploration: st}), nil
}

func (h *ExplorationHandler) GetExploration(ctx context.Context, req *connect.Request[GetExplorationRequest]) (*connect.Response[ExplorationResponse], error) {
	st, err := h.store.Get(ctx, req.Msg.ObjectiveID)
	if errors.Is(err, exploration.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&ExplorationResponse{Exploration: st}), nil
}

func (h *ExplorationHandler) Mount(mux *http.ServeMux) {
	mux.Handle(UpsertExplorationProcedure, connect.NewUnaryHandler(
		UpsertExplorationProcedure, h.UpsertExploration, handlerOptions()...))
	mux.Handle(GetExplorationProcedure, connect.NewUnaryHandler(
		GetExplorationProcedure, h.GetExploration, handlerOptions()...))
}
