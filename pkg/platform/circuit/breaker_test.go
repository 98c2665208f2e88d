package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay feeds outcomes ('f' failure, 's' success) to b and returns the state
// after each step.
func replay(b *Breaker, outcomes string) []State {
	states := make([]State, 0, len(outcomes))
	for _, o := range outcomes {
		switch o {
		case 'f':
			b.RecordFailure()
		case 's':
			b.RecordSuccess()
		}
		states = append(states, b.State())
	}
	return states
}

func TestBreakerTransitions(t *testing.T) {
	const (
		c = StateClosed
		o = StateOpen
	)
	tests := []struct {
		name     string
		opts     []Option
		outcomes string
		want     []State
	}{
		{
			name:     "opens on the third consecutive failure",
			opts:     []Option{WithFailureThreshold(3)},
			outcomes: "fff",
			want:     []State{c, c, o},
		},
		{
			name:     "success resets the failure streak",
			opts:     []Option{WithFailureThreshold(3)},
			outcomes: "ffsfff",
			want:     []State{c, c, c, c, c, o},
		},
		{
			name:     "closes after the success threshold",
			opts:     []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes: "fss",
			want:     []State{o, o, c},
		},
		{
			name:     "failure while open resets the success streak",
			opts:     []Option{WithFailureThreshold(1), WithSuccessThreshold(3)},
			outcomes: "fssfsss",
			want:     []State{o, o, o, o, o, o, c},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("audit-relay", tt.opts...)
			assert.Equal(t, tt.want, replay(b, tt.outcomes))
		})
	}
}

func TestBreakerReportsEdgesOnly(t *testing.T) {
	b := New("audit-relay", WithFailureThreshold(1), WithSuccessThreshold(1))
	assert.Equal(t, "audit-relay", b.Name())
	assert.Equal(t, "closed", b.State().String())

	fallback, change := b.RecordFailure()
	assert.True(t, fallback)
	assert.True(t, change.Opened)

	fallback, change = b.RecordFailure()
	assert.True(t, fallback)
	assert.False(t, change.Opened, "already open")
	assert.Equal(t, "open", b.State().String())

	primary, change := b.RecordSuccess()
	assert.True(t, primary)
	assert.True(t, change.Closed)

	b.RecordFailure()
	require.True(t, b.IsOpen())
	b.Reset()
	assert.False(t, b.IsOpen())
}

func TestBreakerCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("audit-relay",
		WithFailureThreshold(1),
		WithCooldown(10*time.Second),
		WithClock(func() time.Time { return now }),
	)
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(9 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow(), "probe allowed once cooldown elapses")

	b.RecordFailure()
	assert.False(t, b.Allow(), "failed probe restarts cooldown")
}
