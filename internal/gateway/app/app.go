package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	cacheguide "explora/internal/cache/guide"
	"explora/internal/gateway/config"
	"explora/internal/gateway/handler"
	"explora/internal/gateway/handler/rpc"
	"explora/internal/gateway/repository/approach"
	"explora/internal/gateway/repository/artifact"
	"explora/internal/gateway/repository/exploration"
	"explora/internal/gateway/repository/guidestore"
	"explora/internal/gateway/repository/personastore"
	"explora/internal/gateway/server"
	"explora/internal/guide"
	"explora/internal/guide/session"
	"explora/internal/llmclient"
	"explora/internal/persona"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Stores
	explorations := exploration.NewFromEnv(filepath.Join(cfg.DataDir, "explorations.json"))
	approaches := approach.NewFromEnv(filepath.Join(cfg.DataDir, "approaches.json"))
	guides := guidestore.NewFromEnv()
	personaLayers := personastore.NewFromEnv(filepath.Join(cfg.DataDir, "personas.json"))
	artifacts := newArtifactStore(cfg.Artifact)

	// Guide editing
	validator := newValidator(cfg.Validator)
	guideSvc := guide.NewService(guides, validator, explorations)
	guideReads := cacheguide.NewCachedStore(guideSvc, cacheguide.DefaultCacheConfig())
	sessions := session.NewManager(guideSvc, guideReads)

	// Persona assembly
	assembler := persona.NewAssembler(personastore.NewSourceSet(personaLayers, artifacts))

	// Handlers
	wizardHandler := rpc.NewWizardHandler(explorations, approaches)
	explorationHandler := rpc.NewExplorationHandler(explorations, approaches)
	guideHandler := rpc.NewGuideHandler(guideReads, sessions)
	personaHandler := rpc.NewPersonaHandler(assembler, personaLayers, artifacts)
	editorSessionHandler := rpc.NewEditorSessionHandler(sessions)
	traceHandler := handler.NewTraceHandler()

	// Routing & Server
	mux := server.NewMux(wizardHandler, explorationHandler, guideHandler, personaHandler, editorSessionHandler, traceHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

func newArtifactStore(cfg config.ArtifactConfig) artifact.Store {
	if !cfg.Enabled {
		return artifact.NewMemoryStore()
	}
	s3, err := artifact.NewS3Store(artifact.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		log.Printf("artifact store: s3 unavailable, using memory store: %v", err)
		return artifact.NewMemoryStore()
	}
	return s3
}

func newValidator(cfg config.ValidatorConfig) guide.Validator {
	if cfg.GeminiAPIKey == "" {
		log.Printf("guide validator: no GEMINI_API_KEY, using word-overlap heuristic")
		return guide.NewOverlapValidator()
	}
	cli, err := llmclient.NewGeminiClient(context.Background(), cfg.Model)
	if err != nil {
		log.Printf("guide validator: gemini client init failed, using word-overlap heuristic: %v", err)
		return guide.NewOverlapValidator()
	}
	return guide.NewThematicValidator(llmclient.Retry(cli, 3, 500*time.Millisecond))
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
