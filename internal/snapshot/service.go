// Package snapshot turns a business name and location into a simulated
// online presence snapshot.
package snapshot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/presence"
)

const (
	DefaultSnapshotDelay = 1000 * time.Millisecond
	DefaultHeadlineDelay = 800 * time.Millisecond

	msgIdentityRequired = "Business name and location are required"
	msgQueryRequired    = "Business name and location are required as query parameters"
)

type Options struct {
	SnapshotDelay time.Duration
	HeadlineDelay time.Duration
	Logger        logrus.FieldLogger
}

// Service is stateless; one instance serves any number of concurrent requests.
type Service struct {
	metrics       *presence.MetricsGenerator
	headlines     presence.HeadlineWriter
	snapshotDelay time.Duration
	headlineDelay time.Duration
	log           logrus.FieldLogger
	after         func(time.Duration) <-chan time.Time
}

func NewService(metrics *presence.MetricsGenerator, headlines presence.HeadlineWriter, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Service{
		metrics:       metrics,
		headlines:     headlines,
		snapshotDelay: opts.SnapshotDelay,
		headlineDelay: opts.HeadlineDelay,
		log:           opts.Logger,
		after:         time.After,
	}
}

// CreateSnapshot validates id and returns a freshly generated snapshot after
// the simulated upstream latency. The wait ends early if ctx is done.
func (s *Service) CreateSnapshot(ctx context.Context, id models.BusinessIdentity) (*models.Snapshot, error) {
	name, location, err := validate(id.Name, id.Location, msgIdentityRequired)
	if err != nil {
		return nil, err
	}

	m := s.metrics.Generate()
	headline, err := s.headlines.WriteHeadline(ctx, name, location)
	if err != nil {
		return nil, s.wrap(ctx, "create snapshot", err)
	}

	if err := s.wait(ctx, s.snapshotDelay); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"name":     name,
		"location": location,
		"rating":   m.Rating,
		"reviews":  m.Reviews,
	}).Debug("snapshot created")

	return &models.Snapshot{
		Rating:   m.Rating,
		Reviews:  m.Reviews,
		Headline: headline,
	}, nil
}

// RegenerateHeadline returns a new headline only; metrics are never recomputed.
func (s *Service) RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error) {
	name, location, err := validate(name, location, msgQueryRequired)
	if err != nil {
		return nil, err
	}

	headline, err := s.headlines.WriteHeadline(ctx, name, location)
	if err != nil {
		return nil, s.wrap(ctx, "regenerate headline", err)
	}

	if err := s.wait(ctx, s.headlineDelay); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"name": name, "location": location}).Debug("headline regenerated")
	return &models.HeadlineResponse{Headline: headline}, nil
}

// wait suspends the calling goroutine only; other requests are unaffected.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-s.after(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) wrap(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fault(op, err)
}

// validate rejects values that are blank once placeholder tokens are removed,
// since those would leave a hole in the headline.
func validate(name, location, message string) (string, string, error) {
	name = presence.ScrubPlaceholders(name)
	location = presence.ScrubPlaceholders(location)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return "", "", &ValidationError{Fields: missing, Message: message}
	}
	return name, location, nil
}
