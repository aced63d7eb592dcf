package orchestrator

import (
	"errors"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
)

// Phase tags the session. Loading and regenerating are phases, so both
// can never be true at once.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseSubmitting
	PhaseReady
	PhaseRegenerating
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseSubmitting:
		return "submitting"
	case PhaseReady:
		return "ready"
	case PhaseRegenerating:
		return "regenerating"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when an operation is requested while another is in flight.
	ErrBusy = errors.New("another request is already in flight")
	// ErrNoSnapshot means there is nothing to regenerate.
	ErrNoSnapshot = errors.New("no business snapshot to regenerate")
)

// Session is an immutable value. Every transition returns a new Session and
// leaves the receiver untouched.
//
// While submitting, the identity and snapshot from before the submit are
// kept so that a failed submit can fall back to them.
type Session struct {
	phase    Phase
	identity *models.BusinessIdentity
	snapshot *models.Snapshot
	pending  *models.BusinessIdentity
	err      string
}

func (s Session) Phase() Phase { return s.phase }

// Loading is true while a submit is in flight.
func (s Session) Loading() bool { return s.phase == PhaseSubmitting }

// Regenerating is true while a headline regeneration is in flight.
func (s Session) Regenerating() bool { return s.phase == PhaseRegenerating }

func (s Session) Busy() bool { return s.Loading() || s.Regenerating() }

// Error is the user-visible message of the last failure, or "".
func (s Session) Error() string { return s.err }

func (s Session) Identity() (models.BusinessIdentity, bool) {
	if s.identity == nil {
		return models.BusinessIdentity{}, false
	}
	return *s.identity, true
}

func (s Session) Snapshot() (models.Snapshot, bool) {
	if s.snapshot == nil {
		return models.Snapshot{}, false
	}
	return *s.snapshot, true
}

// BeginSubmit moves to Submitting and clears any error.
func (s Session) BeginSubmit(id models.BusinessIdentity) (Session, error) {
	if s.Busy() {
		return s, ErrBusy
	}
	s.phase = PhaseSubmitting
	s.pending = &id
	s.err = ""
	return s, nil
}

// SubmitSucceeded stores the submitted identity and its snapshot, replacing
// whatever was shown before.
func (s Session) SubmitSucceeded(snap models.Snapshot) Session {
	if s.phase != PhaseSubmitting {
		return s
	}
	s.identity = s.pending
	s.snapshot = &snap
	s.pending = nil
	s.phase = PhaseReady
	s.err = ""
	return s
}

// SubmitFailed records msg and returns to the state held before the submit.
func (s Session) SubmitFailed(msg string) Session {
	if s.phase != PhaseSubmitting {
		return s
	}
	s.pending = nil
	s.phase = settledPhase(s)
	s.err = msg
	return s
}

// BeginRegenerate moves to Regenerating. The current snapshot stays visible.
func (s Session) BeginRegenerate() (Session, error) {
	if s.Busy() {
		return s, ErrBusy
	}
	if s.identity == nil || s.snapshot == nil {
		return s, ErrNoSnapshot
	}
	s.phase = PhaseRegenerating
	s.err = ""
	return s, nil
}

// RegenerateSucceeded swaps in the new headline. Rating and reviews are kept.
func (s Session) RegenerateSucceeded(headline string) Session {
	if s.phase != PhaseRegenerating {
		return s
	}
	next := s.snapshot.WithHeadline(headline)
	s.snapshot = &next
	s.phase = PhaseReady
	s.err = ""
	return s
}

// RegenerateFailed records msg; the snapshot is left exactly as it was.
func (s Session) RegenerateFailed(msg string) Session {
	if s.phase != PhaseRegenerating {
		return s
	}
	s.phase = PhaseReady
	s.err = msg
	return s
}

// Reset returns the empty session from any state.
func (s Session) Reset() Session {
	return Session{}
}

func settledPhase(s Session) Phase {
	if s.snapshot != nil {
		return PhaseReady
	}
	return PhaseEmpty
}
