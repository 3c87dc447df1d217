package guidestore

import (
	"context"

	"explora/internal/guide"
)

const guideSchema = `
CREATE TABLE IF NOT EXISTS guide_sections (
    section_id   TEXT PRIMARY KEY,
    objective_id TEXT NOT NULL,
    title        TEXT NOT NULL,
    position     INT  NOT NULL
);
CREATE INDEX IF NOT EXISTS guide_sections_objective_idx
    ON guide_sections (objective_id, position);

CREATE TABLE IF NOT EXISTS guide_questions (
    question_id TEXT PRIMARY KEY,
    section_id  TEXT NOT NULL REFERENCES guide_sections(section_id) ON DELETE CASCADE,
    text        TEXT NOT NULL,
    position    INT  NOT NULL
);
CREATE INDEX IF NOT EXISTS guide_questions_section_idx
    ON guide_questions (section_id, position);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, guideSchema)
	})
	return s.schemaErr
}

func (s *Store) sectionsDB(ctx context.Context, objectiveID string) ([]guide.Section, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT section_id, title FROM guide_sections
WHERE objective_id = $1 ORDER BY position
`, objectiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []guide.Section
	for rows.Next() {
		var sec guide.Section
		if err := rows.Scan(&sec.SectionID, &sec.Title); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sections {
		qrows, err := s.db.QueryContext(ctx, `
SELECT question_id, text FROM guide_questions
WHERE section_id = $1 ORDER BY position
`, sections[i].SectionID)
		if err != nil {
			return nil, err
		}
		for qrows.Next() {
			var q guide.Question
			if err := qrows.Scan(&q.QuestionID, &q.Text); err != nil {
				qrows.Close()
				return nil, err
			}
			sections[i].Questions = append(sections[i].Questions, q)
		}
		if err := qrows.Err(); err != nil {
			qrows.Close()
			return nil, err
		}
		qrows.Close()
	}
	return sections, nil
}

// applyDB rewrites the objective's guide inside one transaction. Guides are
// small, so a full rewrite keeps positions correct without per-kind SQL.
func (s *Store) applyDB(ctx context.Context, objectiveID string, req guide.MutationRequest) ([]guide.Section, error) {
	current, err := s.sectionsDB(ctx, objectiveID)
	if err != nil {
		return nil, err
	}
	next, err := applyMutation(guide.CloneSections(current), req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM guide_sections WHERE objective_id = $1`, objectiveID); err != nil {
		return nil, err
	}
	for i, sec := range next {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO guide_sections (section_id, objective_id, title, position)
VALUES ($1, $2, $3, $4)
`, sec.SectionID, objectiveID, sec.Title, i); err != nil {
			return nil, err
		}
		for j, q := range sec.Questions {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO guide_questions (question_id, section_id, text, position)
VALUES ($1, $2, $3, $4)
`, q.QuestionID, sec.SectionID, q.Text, j); err != nil {
				return nil, err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}
