package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider down")

func fail(context.Context) (string, error) { return "", errProvider }

func succeed(context.Context) (string, error) { return "ok", nil }

func newTestBreaker(threshold int, cooldown time.Duration) (*Breaker, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(BreakerConfig{Threshold: threshold, Cooldown: cooldown})
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = Call(ctx, b, fail)
	}
	assert.Equal(t, Closed, b.State())
	assert.Equal(t, 2, b.Failures())

	_, _ = Call(ctx, b, fail)
	assert.Equal(t, Open, b.State())

	_, err := Call(ctx, b, func(context.Context) (string, error) {
		t.Fatal("called while open")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrOpen)
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)
	ctx := context.Background()

	_, _ = Call(ctx, b, fail)
	_, _ = Call(ctx, b, fail)
	v, err := Call(ctx, b, succeed)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 0, b.Failures())
}

func TestBreakerProbeAfterCooldown(t *testing.T) {
	tests := []struct {
		name  string
		probe func(context.Context) (string, error)
		want  State
	}{
		{"successful probe closes", succeed, Closed},
		{"failed probe reopens", fail, Open},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, now := newTestBreaker(1, time.Second)
			ctx := context.Background()

			_, _ = Call(ctx, b, fail)
			require.Equal(t, Open, b.State())

			*now = now.Add(2 * time.Second)
			assert.Equal(t, HalfOpen, b.State())

			_, _ = Call(ctx, b, tt.probe)
			assert.Equal(t, tt.want, b.State())
		})
	}
}

func TestBreakerAllowsOneProbe(t *testing.T) {
	b, now := newTestBreaker(1, time.Second)
	ctx := context.Background()
	_, _ = Call(ctx, b, fail)
	*now = now.Add(2 * time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Call(ctx, b, func(context.Context) (string, error) {
			close(started)
			<-release
			return "ok", nil
		})
	}()
	<-started

	_, err := Call(ctx, b, succeed)
	assert.ErrorIs(t, err, ErrOpen)

	close(release)
	<-done
	assert.Equal(t, Closed, b.State())
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute)
	_, err := Call(context.Background(), b, func(context.Context) (string, error) {
		return "", context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Closed, b.State())
	assert.Equal(t, 0, b.Failures())
}

func TestBreakerOnChangeAndReset(t *testing.T) {
	var transitions []string
	b := NewBreaker(BreakerConfig{
		Threshold: 1,
		OnChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_, _ = Call(context.Background(), b, fail)
	b.Reset()
	b.Reset()

	assert.Equal(t, []string{"closed->open", "open->closed"}, transitions)
	assert.Equal(t, Closed, b.State())
}

func TestBreakerConcurrentCalls(t *testing.T) {
	b := NewBreaker(BreakerConfig{Threshold: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = Call(context.Background(), b, fail)
				return
			}
			_, _ = Call(context.Background(), b, succeed)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, Closed, b.State())
}

func TestNewBreakerConfig(t *testing.T) {
	cfg := NewBreakerConfig(0, 0)
	b := NewBreaker(cfg)
	assert.Equal(t, 5, b.cfg.Threshold)
	assert.Equal(t, 30*time.Second, b.cfg.Cooldown)

	cfg = NewBreakerConfig(2, 10)
	assert.Equal(t, 2, cfg.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Cooldown)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "half-open", HalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
