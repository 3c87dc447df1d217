package rpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"explora/internal/gateway/repository/artifact"
	"explora/internal/gateway/repository/personastore"
	"explora/internal/persona"
)

type GetPersonaRequest struct {
	PersonaID string `json:"persona_id"`
}

type GetPersonaResponse struct {
	View persona.View `json:"view"`
}

type UpsertPersonaLayerRequest struct {
	PersonaID string             `json:"persona_id"`
	Layer     string             `json:"layer"`
	Payload   persona.TraitLayer `json:"payload"`
}

type UpsertPersonaLayerResponse struct {
	View persona.View `json:"view"`
}

type PutPersonaPreviewRequest struct {
	PersonaID string `json:"persona_id"`
	// Payload is the raw generator output, stored verbatim and parsed
	// leniently at read time.
	Payload string `json:"payload"`
}

type PutPersonaPreviewResponse struct {
	Stored bool `json:"stored"`
}

// PersonaHandler serves assembled persona views and accepts layer writes.
type PersonaHandler struct {
	assembler *persona.Assembler
	layers    *personastore.Store
	artifacts artifact.Store
}

func NewPersonaHandler(assembler *persona.Assembler, layers *personastore.Store, artifacts artifact.Store) *PersonaHandler {
	return &PersonaHandler{assembler: assembler, layers: layers, artifacts: artifacts}
}

func (h *PersonaHandler) GetPersona(ctx context.Context, req *connect.Request[GetPersonaRequest]) (*connect.Response[GetPersonaResponse], error) {
	personaID := strings.TrimSpace(req.Msg.PersonaID)
	if personaID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("persona_id is required"))
	}
	view, err := h.assembler.View(ctx, personaID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&GetPersonaResponse{View: view}), nil
}

func (h *PersonaHandler) UpsertPersonaLayer(ctx context.Context, req *connect.Request[UpsertPersonaLayerRequest]) (*connect.Response[UpsertPersonaLayerResponse], error) {
	in := req.Msg
	if err := h.layers.PutLayer(ctx, in.PersonaID, strings.TrimSpace(in.Layer), in.Payload); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	view, err := h.assembler.View(ctx, strings.TrimSpace(in.PersonaID))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&UpsertPersonaLayerResponse{View: view}), nil
}

func (h *PersonaHandler) PutPersonaPreview(ctx context.Context, req *connect.Request[PutPersonaPreviewRequest]) (*connect.Response[PutPersonaPreviewResponse], error) {
	in := req.Msg
	if strings.TrimSpace(in.Payload) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("payload is required"))
	}
	err := h.artifacts.Put(ctx, strings.TrimSpace(in.PersonaID), personastore.PreviewArtifactName, []byte(in.Payload))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&PutPersonaPreviewResponse{Stored: true}), nil
}

func (h *PersonaHandler) Mount(mux *http.ServeMux) {
	mux.Handle(GetPersonaProcedure, connect.NewUnaryHandler(
		GetPersonaProcedure, h.GetPersona, handlerOptions()...))
	mux.Handle(UpsertPersonaLayerProcedure, connect.NewUnaryHandler(
		UpsertPersonaLayerProcedure, h.UpsertPersonaLayer, handlerOptions()...))
	mux.Handle(PutPersonaPreviewProcedure, connect.NewUnaryHandler(
		PutPersonaPreviewProcedure, h.PutPersonaPreview, handlerOptions()...))
}
