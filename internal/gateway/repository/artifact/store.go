package artifact

import (
	"context"
	"errors"
)

// Store persists generated persona artifacts (preview payloads, avatars)
// keyed by persona id and file name.
type Store interface {
	Put(ctx context.Context, personaID, name string, content []byte) error
	Get(ctx context.Context, personaID, name string) ([]byte, error)
	List(ctx context.Context, personaID string) ([]string, error)
}

var ErrNotFound = errors.New("artifact not found")
