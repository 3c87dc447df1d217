package personastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"explora/internal/persona"
)

// Layer names accepted by the store. The preview layer lives in the
// artifact store, not here.
const (
	LayerDetails = "details"
	LayerTraits  = "traits"
	LayerManual  = "manual"
)

var ErrNotFound = errors.New("personastore: layer not found")

func validLayer(layer string) bool {
	switch layer {
	case LayerDetails, LayerTraits, LayerManual:
		return true
	}
	return false
}

// Store keeps persona attribute layers as JSON documents, one row per
// (persona, layer). Postgres is selected by PERSONA_STORE_PG_DSN; a JSON
// file backend serves everything else.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byKey    map[string]persona.TraitLayer

	schemaOnce sync.Once
	schemaErr  error
}

func New(path string) *Store {
	return &Store{path: path, byKey: make(map[string]persona.TraitLayer)}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("PERSONA_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		log.Printf("persona store: postgres unavailable, using file backend: %v", err)
		return New(path)
	}
	return s
}

func (s *Store) Layer(ctx context.Context, personaID, layer string) (persona.TraitLayer, error) {
	personaID = strings.TrimSpace(personaID)
	if personaID == "" {
		return nil, fmt.Errorf("persona_id is required")
	}
	if !validLayer(layer) {
		return nil, fmt.Errorf("unknown persona layer %q", layer)
	}
	if s.db != nil {
		return s.getDB(ctx, personaID, layer)
	}
	return s.getFile(personaID, layer)
}

func (s *Store) PutLayer(ctx context.Context, personaID, layer string, payload persona.TraitLayer) error {
	personaID = strings.TrimSpace(personaID)
	if personaID == "" {
		return fmt.Errorf("persona_id is required")
	}
	if !validLayer(layer) {
		return fmt.Errorf("unknown persona layer %q", layer)
	}
	if payload == nil {
		payload = persona.TraitLayer{}
	}
	if s.db != nil {
		return s.putDB(ctx, personaID, layer, payload)
	}
	return s.putFile(personaID, layer, payload)
}
