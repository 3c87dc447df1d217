package guidestore

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"explora/internal/guide"
)

var ErrNotFound = errors.New("guidestore: target not found")

// Store persists discussion guides keyed by objective. Section and question
// order is stored explicitly and survives round trips. The memory backend
// serves tests and DSN-less deployments; postgres is selected by
// GUIDE_STORE_PG_DSN.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	guides map[string][]guide.Section

	schemaOnce sync.Once
	schemaErr  error
}

func NewMemory() *Store {
	return &Store{guides: make(map[string][]guide.Section)}
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

func NewFromEnv() *Store {
	dsn := strings.TrimSpace(os.Getenv("GUIDE_STORE_PG_DSN"))
	if dsn == "" {
		return NewMemory()
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		log.Printf("guide store: postgres unavailable, using memory backend: %v", err)
		return NewMemory()
	}
	return s
}

var _ guide.Repository = (*Store)(nil)

// applyMutation edits sections in place and returns the result. Shared by
// both backends so the six kinds behave identically.
func applyMutation(sections []guide.Section, req guide.MutationRequest) ([]guide.Section, error) {
	switch req.Kind {
	case guide.CreateSection:
		sections = append(sections, guide.Section{
			SectionID: newSectionID(req.Payload),
			Title:     req.Payload,
		})
		return sections, nil

	case guide.UpdateSection:
		for i := range sections {
			if sections[i].SectionID == req.TargetID {
				sections[i].Title = req.Payload
				return sections, nil
			}
		}
		return nil, fmt.Errorf("%w: section %s", ErrNotFound, req.TargetID)

	case guide.DeleteSection:
		for i := range sections {
			if sections[i].SectionID == req.TargetID {
				return append(sections[:i], sections[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: section %s", ErrNotFound, req.TargetID)

	case guide.CreateQuestion:
		for i := range sections {
			if sections[i].SectionID == req.TargetID {
				sections[i].Questions = append(sections[i].Questions, guide.Question{
					QuestionID: newQuestionID(req.Payload),
					Text:       req.Payload,
				})
				return sections, nil
			}
		}
		return nil, fmt.Errorf("%w: section %s", ErrNotFound, req.TargetID)

	case guide.UpdateQuestion:
		for i := range sections {
			for j := range sections[i].Questions {
				if sections[i].Questions[j].QuestionID == req.TargetID {
					sections[i].Questions[j].Text = req.Payload
					return sections, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: question %s", ErrNotFound, req.TargetID)

	case guide.DeleteQuestion:
		for i := range sections {
			for j := range sections[i].Questions {
				if sections[i].Questions[j].QuestionID == req.TargetID {
					sections[i].Questions = append(
						sections[i].Questions[:j], sections[i].Questions[j+1:]...)
					return sections, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: question %s", ErrNotFound, req.TargetID)
	}
	return nil, fmt.Errorf("guidestore: unknown mutation kind %q", req.Kind)
}
