package server

import (
	"net/http"

	"explora/internal/gateway/handler"
	"explora/internal/gateway/handler/rpc"
	"explora/internal/gateway/middleware"
)

func NewMux(
	wizardHandler *rpc.WizardHandler,
	explorationHandler *rpc.ExplorationHandler,
	guideHandler *rpc.GuideHandler,
	personaHandler *rpc.PersonaHandler,
	editorSessionHandler *rpc.EditorSessionHandler,
	traceHandler *handler.TraceHandler,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	wizardHandler.Mount(mux)
	explorationHandler.Mount(mux)
	guideHandler.Mount(mux)
	personaHandler.Mount(mux)

	// Websocket
	mux.HandleFunc("/api/editor-session", editorSessionHandler.HandleEditorSessionWS)

	// Debug Handlers
	mux.HandleFunc("/debug/frontend-trace", traceHandler.HandleFrontendTrace)

	// Middleware
	return middleware.CORS(mux)
}
