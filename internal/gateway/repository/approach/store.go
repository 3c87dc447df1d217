package approach

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"explora/internal/wizard"
)

// Store persists the last resolved research approach per objective. It
// backs onto postgres when a DSN is configured and a JSON file otherwise.
// Writes are idempotent overwrites; an unset value is never written, so a
// resolved approach cannot revert to unset.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]string

	schemaOnce sync.Once
	schemaErr  error

	recent *lru.Cache[string, string]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]string),
	}
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
	recent, err := lru.New[string, string](4096)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, recent: recent}, nil
}

// NewFromEnv prefers APPROACH_STORE_PG_DSN and falls back to the file
// backend at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("APPROACH_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		log.Printf("approach store: postgres unavailable, using file backend: %v", err)
		return New(path)
	}
	return s
}

var _ wizard.ApproachStore = (*Store)(nil)

func (s *Store) Approach(objectiveID string) (wizard.Approach, bool) {
	if s == nil {
		return wizard.ApproachUnset, false
	}
	id := strings.TrimSpace(objectiveID)
	if id == "" {
		return wizard.ApproachUnset, false
	}
	if s.db != nil {
		return s.getDB(id)
	}
	return s.getFile(id)
}

func (s *Store) SetApproach(objectiveID string, approach wizard.Approach) {
	if s == nil {
		return
	}
	id := strings.TrimSpace(objectiveID)
	if id == "" || approach == wizard.ApproachUnset {
		return
	}
	if s.db != nil {
		s.setDB(id, string(approach))
		return
	}
	s.setFile(id, string(approach))
}
