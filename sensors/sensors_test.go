package sensors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_OptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "zero sensors", opts: []Option{WithSensorCount(0)}},
		{name: "zero interval", opts: []Option{WithInterval(0)}},
		{name: "zero report period", opts: []Option{WithReportEvery(0)}},
		{name: "zero swing window", opts: []Option{WithSwingWindow(0)}},
		{name: "zero top-k", opts: []Option{WithTopK(0)}},
		{name: "inverted value range", opts: []Option{WithValueRange(10, -10)}},
		{name: "nil metrics provider", opts: []Option{WithMetrics(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := New(tt.opts...)
			require.Nil(t, sim)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSimulator_Run(t *testing.T) {
	sim, err := New(
		WithSensorCount(4),
		WithInterval(2*time.Millisecond),
		WithReportEvery(25*time.Millisecond),
		WithSwingWindow(50*time.Millisecond),
		WithTopK(3),
		WithValueRange(-100, 70),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sim.Run(ctx) }()

	select {
	case rep := <-sim.Reports():
		require.Positive(t, rep.Count, "a report after several intervals must carry readings")
		require.NotEmpty(t, rep.Lowest)
		require.NotEmpty(t, rep.Highest)
		require.LessOrEqual(t, len(rep.Lowest), 3)
		for _, r := range append(append([]Reading{}, rep.Lowest...), rep.Highest...) {
			require.GreaterOrEqual(t, r.Value, int64(-100))
			require.LessOrEqual(t, r.Value, int64(70))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no report produced")
	}

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err, "cancellation is a normal shutdown")
	case <-time.After(5 * time.Second):
		t.Fatal("simulator did not stop after cancellation")
	}

	// The reports channel is closed once Run returns.
	for range sim.Reports() {
	}
}
