package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"explora/internal/guide"
)

// State of one editor session's mutation protocol.
type State string

const (
	StateIdle             State = "idle"
	StateSubmitting       State = "submitting"
	StateAwaitingDecision State = "awaiting_decision"
	StateRetrying         State = "retrying"
)

var (
	// ErrDecisionPending is returned when Submit is called while a
	// validation decision is open. The session enforces this, not the
	// caller; otherwise a second submit could orphan the prompt.
	ErrDecisionPending = errors.New("a validation decision is pending")

	ErrBusy              = errors.New("a mutation is already in flight")
	ErrNoPendingDecision = errors.New("no validation decision is pending")
	ErrClosed            = errors.New("editor session is closed")
)

// GuideService is the slice of the guide service the protocol drives.
type GuideService interface {
	Mutate(ctx context.Context, objectiveID string, req guide.MutationRequest) (guide.MutationResult, error)
}

// Invalidator drops the cached guide for an objective after a commit. The
// commit path always invalidates; it never patches the cache in place.
type Invalidator interface {
	Invalidate(objectiveID string)
}

// Outcome reports what a Submit or Decide call did.
type Outcome struct {
	Committed bool            `json:"committed"`
	Reason    string          `json:"reason,omitempty"`
	Sections  []guide.Section `json:"sections,omitempty"`
}

type pendingDecision struct {
	reason string
	req    guide.MutationRequest
}

// Session is the per-editor mutation protocol: Idle -> Submitting ->
// {committed -> Idle} | {AwaitingDecision -> Retrying -> Idle | Idle}.
type Session struct {
	id          string
	objectiveID string
	svc         GuideService
	inv         Invalidator

	mu      sync.Mutex
	state   State
	pending *pendingDecision
	closed  bool
	changed chan struct{}
}

func newSession(id, objectiveID string, svc GuideService, inv Invalidator) *Session {
	return &Session{
		id:          id,
		objectiveID: objectiveID,
		svc:         svc,
		inv:         inv,
		state:       StateIdle,
		changed:     make(chan struct{}),
	}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) ObjectiveID() string { return s.objectiveID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit sends one mutation. The force flag is always cleared here; replays
// of a rejected payload go through Decide, never through Submit.
func (s *Session) Submit(ctx context.Context, req guide.MutationRequest) (Outcome, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	switch s.state {
	case StateAwaitingDecision:
		s.mu.Unlock()
		return Outcome{}, ErrDecisionPending
	case StateSubmitting, StateRetrying:
		s.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	req.ForceInsert = false
	s.state = StateSubmitting
	s.notifyLocked()
	s.mu.Unlock()

	res, err := s.svc.Mutate(ctx, s.objectiveID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Transport failure: report it and settle back to idle. It must not
		// open the decision prompt; only a validation verdict does that.
		s.state = StateIdle
		s.notifyLocked()
		return Outcome{}, err
	}
	if res.ValidationStatus == guide.ValidationFailed {
		if s.closed {
			// The editor went away mid-flight; discard instead of leaving an
			// orphaned prompt.
			s.state = StateIdle
			s.notifyLocked()
			return Outcome{Reason: res.Reason}, nil
		}
		s.pending = &pendingDecision{reason: res.Reason, req: req}
		s.state = StateAwaitingDecision
		s.notifyLocked()
		return Outcome{Reason: res.Reason}, nil
	}
	s.inv.Invalidate(s.objectiveID)
	s.state = StateIdle
	s.notifyLocked()
	return Outcome{Committed: true, Sections: res.Sections}, nil
}

// Decide resolves the open validation prompt. Reject discards the pending
// request with no effect. Accept resubmits the identical payload with the
// force flag set; only that flag differs from the rejected attempt.
func (s *Session) Decide(ctx context.Context, accept bool) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateAwaitingDecision || s.pending == nil {
		s.mu.Unlock()
		return Outcome{}, ErrNoPendingDecision
	}
	if !accept {
		s.pending = nil
		s.state = StateIdle
		s.notifyLocked()
		s.mu.Unlock()
		return Outcome{}, nil
	}
	req := s.pending.req
	req.ForceInsert = true
	s.state = StateRetrying
	s.notifyLocked()
	s.mu.Unlock()

	res, err := s.svc.Mutate(ctx, s.objectiveID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.state = StateIdle
	defer s.notifyLocked()
	if err != nil {
		// A forced retry can still fail at the transport level. That is a
		// service failure, not a second verdict, so no prompt reopens.
		return Outcome{}, err
	}
	if res.ValidationStatus == guide.ValidationFailed {
		// The contract says forced content is not re-validated; treat a
		// verdict here as a misbehaving service.
		return Outcome{}, fmt.Errorf("forced mutation rejected: %s", res.Reason)
	}
	s.inv.Invalidate(s.objectiveID)
	return Outcome{Committed: true, Sections: res.Sections}, nil
}

// PendingReason returns the open prompt's reason, if any.
func (s *Session) PendingReason() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return "", false
	}
	return s.pending.reason, true
}

// AbandonPending drops an open decision prompt without committing anything.
// Navigating away from the editor is an implicit reject.
func (s *Session) AbandonPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingDecision {
		return
	}
	s.pending = nil
	s.state = StateIdle
	s.notifyLocked()
}

// Close abandons the session; an open prompt is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	s.state = StateIdle
	s.notifyLocked()
}

func (s *Session) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// Snapshot is the observable protocol state pushed to subscribers.
type Snapshot struct {
	SessionID   string `json:"session_id"`
	ObjectiveID string `json:"objective_id"`
	State       State  `json:"state"`
	Reason      string `json:"reason,omitempty"`
	Closed      bool   `json:"closed"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		SessionID:   s.id,
		ObjectiveID: s.objectiveID,
		State:       s.state,
		Closed:      s.closed,
	}
	if s.pending != nil {
		snap.Reason = s.pending.reason
	}
	return snap
}

// Subscribe emits a snapshot now and after every state change until ctx is
// canceled or the session closes.
func (s *Session) Subscribe(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 8)
	go func() {
		defer close(out)
		for {
			s.mu.Lock()
			snap := Snapshot{
				SessionID:   s.id,
				ObjectiveID: s.objectiveID,
				State:       s.state,
				Closed:      s.closed,
			}
			if s.pending != nil {
				snap.Reason = s.pending.reason
			}
			ch := s.changed
			s.mu.Unlock()

			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
			if snap.Closed {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ch:
			}
		}
	}()
	return out
}

func normalizeObjectiveID(objectiveID string) string {
	return strings.TrimSpace(objectiveID)
}
