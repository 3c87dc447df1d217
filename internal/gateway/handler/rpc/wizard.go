package rpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"explora/internal/gateway/repository/exploration"
	"explora/internal/wizard"
)

type ResolveStageRequest struct {
	Path        string `json:"path"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	ObjectiveID string `json:"objective_id,omitempty"`
	Override    string `json:"override,omitempty"`
}

type ResolveStageResponse struct {
	wizard.ResolveOutput
}

// WizardHandler resolves the authoring wizard's stage for a location. The
// exploration record supplies the remote approach when it exists; lookup
// failures degrade to path inference rather than failing the call.
type WizardHandler struct {
	explorations *exploration.Store
	approaches   wizard.ApproachStore
}

func NewWizardHandler(explorations *exploration.Store, approaches wizard.ApproachStore) *WizardHandler {
	return &WizardHandler{explorations: explorations, approaches: approaches}
}

func (h *WizardHandler) ResolveStage(ctx context.Context, req *connect.Request[ResolveStageRequest]) (*connect.Response[ResolveStageResponse], error) {
	in := req.Msg

	remote := ""
	_, objectiveID := wizard.Identifiers(in.Path, in.WorkspaceID, in.ObjectiveID)
	if objectiveID != "" && h.explorations != nil {
		st, err := h.explorations.Get(ctx, objectiveID)
		if err == nil {
			remote = st.ResearchApproach
		} else if !errors.Is(err, exploration.ErrNotFound) {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	out := wizard.Resolve(wizard.ResolveInput{
		Path:             in.Path,
		RouteWorkspaceID: in.WorkspaceID,
		RouteObjectiveID: in.ObjectiveID,
		Override:         wizard.ParseApproach(in.Override),
		RemoteApproach:   remote,
		Store:            h.approaches,
	})
	return connect.NewResponse(&ResolveStageResponse{ResolveOutput: out}), nil
}

func (h *WizardHandler) Mount(mux *http.ServeMux) {
	mux.Handle(ResolveStageProcedure, connect.NewUnaryHandler(
		ResolveStageProcedure, h.ResolveStage, handlerOptions()...))
}
