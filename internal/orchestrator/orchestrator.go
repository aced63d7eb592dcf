// Package orchestrator sequences submit, regenerate and reset for a single
// dashboard session on top of the HTTP API.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/client"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
)

const (
	msgSubmitFailed     = "Failed to fetch business data"
	msgRegenerateFailed = "Failed to regenerate headline"
)

// ErrDiscarded is returned when the session was reset while a request was
// in flight; its result was dropped.
var ErrDiscarded = errors.New("session was reset while the request was in flight")

// API is implemented by *client.Client.
type API interface {
	GetBusinessData(ctx context.Context, id models.BusinessIdentity) (*models.Snapshot, error)
	RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error)
}

// Orchestrator owns one Session. Network calls run without the lock held;
// each completion is applied only if no reset happened in between.
type Orchestrator struct {
	api      API
	log      logrus.FieldLogger
	onChange func(Session)

	mu    sync.Mutex
	state Session
	epoch uint64
}

type Option func(*Orchestrator)

// WithOnChange registers fn to receive every new Session.
func WithOnChange(fn func(Session)) Option {
	return func(o *Orchestrator) { o.onChange = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.log = log }
}

func New(api API, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api: api,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current session.
func (o *Orchestrator) State() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit fetches a snapshot for id. A form that fails ValidateForm is
// rejected without a request and without touching the session.
func (o *Orchestrator) Submit(ctx context.Context, id models.BusinessIdentity) error {
	if ferr := ValidateForm(id); ferr != nil {
		return ferr
	}

	epoch, err := o.begin(func(s Session) (Session, error) { return s.BeginSubmit(id) })
	if err != nil {
		return err
	}

	snap, err := o.api.GetBusinessData(ctx, id)
	if err != nil {
		o.log.WithError(err).WithField("name", id.Name).Warn("business data request failed")
	}

	applied := o.finish(epoch, func(s Session) Session {
		if err != nil {
			return s.SubmitFailed(userMessage(err, msgSubmitFailed))
		}
		return s.SubmitSucceeded(*snap)
	})
	if !applied {
		return ErrDiscarded
	}
	return err
}

// Regenerate asks for a new headline for the stored identity. It is a
// no-op when there is no snapshot yet.
func (o *Orchestrator) Regenerate(ctx context.Context) error {
	var id models.BusinessIdentity
	epoch, err := o.begin(func(s Session) (Session, error) {
		next, err := s.BeginRegenerate()
		if err == nil {
			id, _ = next.Identity()
		}
		return next, err
	})
	if errors.Is(err, ErrNoSnapshot) {
		o.log.Debug("regenerate requested without a snapshot; ignoring")
		return nil
	}
	if err != nil {
		return err
	}

	resp, err := o.api.RegenerateHeadline(ctx, id.Name, id.Location)
	if err != nil {
		o.log.WithError(err).WithField("name", id.Name).Warn("headline regeneration failed")
	}

	applied := o.finish(epoch, func(s Session) Session {
		if err != nil {
			return s.RegenerateFailed(userMessage(err, msgRegenerateFailed))
		}
		return s.RegenerateSucceeded(resp.Headline)
	})
	if !applied {
		return ErrDiscarded
	}
	return err
}

// Reset clears the session from any state. A request still in flight will
// have its result discarded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.state = o.state.Reset()
	o.epoch++
	s := o.state
	o.mu.Unlock()

	o.notify(s)
}

func (o *Orchestrator) begin(transition func(Session) (Session, error)) (uint64, error) {
	o.mu.Lock()
	next, err := transition(o.state)
	if err != nil {
		o.mu.Unlock()
		return 0, err
	}
	o.state = next
	epoch := o.epoch
	o.mu.Unlock()

	o.notify(next)
	return epoch, nil
}

func (o *Orchestrator) finish(epoch uint64, transition func(Session) Session) bool {
	o.mu.Lock()
	if epoch != o.epoch {
		o.mu.Unlock()
		return false
	}
	o.state = transition(o.state)
	next := o.state
	o.mu.Unlock()

	o.notify(next)
	return true
}

func (o *Orchestrator) notify(s Session) {
	if o.onChange != nil {
		o.onChange(s)
	}
}

// userMessage picks the single message shown for a failed request.
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var tErr *client.TransportError
	if errors.As(err, &tErr) {
		if reason := tErr.Reason(); reason != "" {
			return fallback + ": " + reason
		}
	}
	return fallback
}
