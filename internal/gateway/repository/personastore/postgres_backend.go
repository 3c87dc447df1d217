package personastore

import (
	"context"
	"database/sql"
	"encoding/json"

	"explora/internal/persona"
)

const personaSchema = `
CREATE TABLE IF NOT EXISTS persona_layers (
    persona_id TEXT NOT NULL,
    layer      TEXT NOT NULL,
    payload    JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (persona_id, layer)
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, personaSchema)
	})
	return s.schemaErr
}

func (s *Store) getDB(ctx context.Context, personaID, layer string) (persona.TraitLayer, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
SELECT payload FROM persona_layers WHERE persona_id = $1 AND layer = $2
`, personaID, layer).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out persona.TraitLayer
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) putDB(ctx context.Context, personaID, layer string, payload persona.TraitLayer) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO persona_layers (persona_id, layer, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (persona_id, layer)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
`, personaID, layer, raw)
	return err
}
