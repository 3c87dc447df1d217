package approach

import (
	"database/sql"
	"log"

	"explora/internal/wizard"
)

const approachSchema = `
CREATE TABLE IF NOT EXISTS objective_approaches (
    objective_id TEXT PRIMARY KEY,
    approach     TEXT NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *Store) ensureSchema() error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(approachSchema)
	})
	return s.schemaErr
}

func (s *Store) getDB(id string) (wizard.Approach, bool) {
	if raw, ok := s.recent.Get(id); ok {
		a := wizard.ParseApproach(raw)
		return a, a != wizard.ApproachUnset
	}
	if err := s.ensureSchema(); err != nil {
		log.Printf("approach store: schema: %v", err)
		return wizard.ApproachUnset, false
	}
	var raw string
	err := s.db.QueryRow(
		`SELECT approach FROM objective_approaches WHERE objective_id = $1`, id,
	).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("approach store: select %s: %v", id, err)
		}
		return wizard.ApproachUnset, false
	}
	s.recent.Add(id, raw)
	a := wizard.ParseApproach(raw)
	return a, a != wizard.ApproachUnset
}

func (s *Store) setDB(id, value string) {
	if err := s.ensureSchema(); err != nil {
		log.Printf("approach store: schema: %v", err)
		return
	}
	_, err := s.db.Exec(`
INSERT INTO objective_approaches (objective_id, approach, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (objective_id)
DO UPDATE SET approach = EXCLUDED.approach, updated_at = now()
`, id, value)
	if err != nil {
		log.Printf("approach store: upsert %s: %v", id, err)
		return
	}
	s.recent.Add(id, value)
}
