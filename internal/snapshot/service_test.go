package snapshot

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/presence"
)

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts.Logger = logger
	rnd := presence.NewSeededRandom(99)
	return NewService(
		presence.NewMetricsGenerator(rnd),
		presence.NewHeadlineGenerator(rnd, nil),
		opts,
	)
}

func TestCreateSnapshotInvariants(t *testing.T) {
	s := newTestService(t, Options{})

	for i := 0; i < 500; i++ {
		snap, err := s.CreateSnapshot(context.Background(), models.BusinessIdentity{Name: "Joe's Cafe", Location: "Austin"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, snap.Rating, 3.0)
		assert.LessOrEqual(t, snap.Rating, 5.0)
		assert.InDelta(t, snap.Rating, math.Round(snap.Rating*10)/10, 1e-9)
		assert.GreaterOrEqual(t, snap.Reviews, 50)
		assert.LessOrEqual(t, snap.Reviews, 550)
		assert.NotContains(t, snap.Headline, "{name}")
		assert.NotContains(t, snap.Headline, "{location}")
	}
}

func TestCreateSnapshotValidation(t *testing.T) {
	s := newTestService(t, Options{})

	tests := []struct {
		name    string
		id      models.BusinessIdentity
		wantErr bool
		fields  []string
	}{
		{"blank name", models.BusinessIdentity{Name: "", Location: "X"}, true, []string{"name"}},
		{"blank location", models.BusinessIdentity{Name: "X", Location: ""}, true, []string{"location"}},
		{"whitespace only", models.BusinessIdentity{Name: "  ", Location: "\t"}, true, []string{"name", "location"}},
		{"placeholder only name", models.BusinessIdentity{Name: "{name}", Location: "Austin"}, true, []string{"name"}},
		{"placeholder only location", models.BusinessIdentity{Name: "Joe's Cafe", Location: " {location}{name} "}, true, []string{"location"}},
		{"valid", models.BusinessIdentity{Name: "Joe's Cafe", Location: "Austin"}, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := s.CreateSnapshot(context.Background(), tt.id)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, snap)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.fields, ve.Fields)
			assert.Equal(t, msgIdentityRequired, ve.Error())
		})
	}
}

func TestRegenerateHeadline(t *testing.T) {
	s := newTestService(t, Options{})

	resp, err := s.RegenerateHeadline(context.Background(), "Joe's Cafe", "Austin")
	require.NoError(t, err)
	assert.Contains(t, resp.Headline, "Joe's Cafe")

	_, err = s.RegenerateHeadline(context.Background(), "Joe's Cafe", " ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, msgQueryRequired, err.Error())

	_, err = s.RegenerateHeadline(context.Background(), "{location}", "Austin")
	assert.True(t, IsValidation(err))
}

func TestCreateSnapshotScrubsEmbeddedPlaceholders(t *testing.T) {
	s := newTestService(t, Options{})

	snap, err := s.CreateSnapshot(context.Background(), models.BusinessIdentity{Name: "Joe's{name} Cafe", Location: "Austin"})
	require.NoError(t, err)
	assert.Contains(t, snap.Headline, "Joe's Cafe")
	assert.False(t, presence.HasPlaceholders(snap.Headline))
}

func TestServiceDelays(t *testing.T) {
	s := newTestService(t, Options{SnapshotDelay: time.Second, HeadlineDelay: 800 * time.Millisecond})

	var mu sync.Mutex
	var waited []time.Duration
	s.after = func(d time.Duration) <-chan time.Time {
		mu.Lock()
		waited = append(waited, d)
		mu.Unlock()
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	_, err := s.CreateSnapshot(context.Background(), models.BusinessIdentity{Name: "A", Location: "B"})
	require.NoError(t, err)
	_, err = s.RegenerateHeadline(context.Background(), "A", "B")
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{time.Second, 800 * time.Millisecond}, waited)
}

func TestServiceDelayDoesNotSerializeRequests(t *testing.T) {
	s := newTestService(t, Options{SnapshotDelay: 50 * time.Millisecond})

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateSnapshot(context.Background(), models.BusinessIdentity{Name: "A", Location: "B"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestServiceDelayCancelled(t *testing.T) {
	s := newTestService(t, Options{SnapshotDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.CreateSnapshot(ctx, models.BusinessIdentity{Name: "A", Location: "B"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type brokenWriter struct{}

func (brokenWriter) WriteHeadline(context.Context, string, string) (string, error) {
	return "", errors.New("model exploded")
}

func TestServiceFaultIsGeneric(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewService(presence.NewMetricsGenerator(nil), brokenWriter{}, Options{Logger: logger})

	_, err := s.RegenerateHeadline(context.Background(), "A", "B")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerFault)
	assert.False(t, IsValidation(err))
}
