package exploration

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// State is the durable per-objective record the workflow operates on.
type State struct {
	ObjectiveID      string `json:"objective_id"`
	WorkspaceID      string `json:"workspace_id"`
	Title            string `json:"title"`
	ResearchApproach string `json:"research_approach,omitempty"`
}

var ErrNotFound = errors.New("exploration: objective not found")

// Store keeps exploration state in postgres when a DSN is configured and
// in a JSON file otherwise.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]State

	schemaOnce sync.Once
	schemaErr  error
}

func New(path string) *Store {
	return &Store{path: path, byID: make(map[string]State)}
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
	dsn := strings.TrimSpace(os.Getenv("EXPLORATION_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		log.Printf("exploration store: postgres unavailable, using file backend: %v", err)
		return New(path)
	}
	return s
}

func (s *Store) Get(ctx context.Context, objectiveID string) (State, error) {
	id := strings.TrimSpace(objectiveID)
	if id == "" {
		return State{}, ErrNotFound
	}
	if s.db != nil {
		return s.getDB(ctx, id)
	}
	return s.getFile(id)
}

func (s *Store) Put(ctx context.Context, st State) error {
	st.ObjectiveID = strings.TrimSpace(st.ObjectiveID)
	if st.ObjectiveID == "" {
		return errors.New("exploration: empty objective id")
	}
	if s.db != nil {
		return s.putDB(ctx, st)
	}
	return s.putFile(st)
}

// Update applies fn to the stored state under the store's write lock
// semantics and persists the result. fn receives the zero State when the
// objective does not exist yet.
func (s *Store) Update(ctx context.Context, objectiveID string, fn func(State) State) (State, error) {
	cur, err := s.Get(ctx, objectiveID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return State{}, err
	}
	if errors.Is(err, ErrNotFound) {
		cur = State{ObjectiveID: strings.TrimSpace(objectiveID)}
	}
	next := fn(cur)
	next.ObjectiveID = cur.ObjectiveID
	if err := s.Put(ctx, next); err != nil {
		return State{}, err
	}
	return next, nil
}

// Topic returns the objective's title for guide validation.
func (s *Store) Topic(ctx context.Context, objectiveID string) (string, error) {
	st, err := s.Get(ctx, objectiveID)
	if err != nil {
		return "", err
	}
	return st.Title, nil
}
