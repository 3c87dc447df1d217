package exploration

import (
	"context"
	"database/sql"
)

const explorationSchema = `
CREATE TABLE IF NOT EXISTS explorations (
    objective_id      TEXT PRIMARY KEY,
    workspace_id      TEXT NOT NULL DEFAULT '',
    title             TEXT NOT NULL DEFAULT '',
    research_approach TEXT NOT NULL DEFAULT '',
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, explorationSchema)
	})
	return s.schemaErr
}

func (s *Store) getDB(ctx context.Context, id string) (State, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return State{}, err
	}
	var st State
	err := s.db.QueryRowContext(ctx, `
SELECT objective_id, workspace_id, title, research_approach
FROM explorations WHERE objective_id = $1
`, id).Scan(&st.ObjectiveID, &st.WorkspaceID, &st.Title, &st.ResearchApproach)
	if err == sql.ErrNoRows {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}
	return st, nil
}

func (s *Store) putDB(ctx context.Context, st State) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO explorations (objective_id, workspace_id, title, research_approach, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (objective_id)
DO UPDATE SET
    workspace_id      = EXCLUDED.workspace_id,
    title             = EXCLUDED.title,
    research_approach = EXCLUDED.research_approach,
    updated_at        = now()
`, st.ObjectiveID, st.WorkspaceID, st.Title, st.ResearchApproach)
	return err
}
