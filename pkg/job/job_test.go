package job_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/remitbase/settlement/pkg/job"
)

func TestRunner(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var runs atomic.Int64

	r := job.NewRunner().
		Register("count", 10*time.Millisecond, func(context.Context) error {
			runs.Add(1)
			return nil
		})

	r.Start(ctx)

	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	r.Wait()
}

func TestRunner_SurvivesFailures(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var runs atomic.Int64

	r := job.NewRunner().
		Register("flaky", 10*time.Millisecond, func(context.Context) error {
			if runs.Add(1) == 1 {
				return errors.New("transient")
			}

			return nil
		}).
		Register("panicky", 10*time.Millisecond, func(context.Context) error {
			panic("boom")
		})

	r.Start(ctx)

	// The failing first run does not stop the schedule.
	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	r.Wait()
}

func TestRunner_RegisterIf(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int64

	r := job.NewRunner().
		RegisterIf(false, "disabled", time.Millisecond, func(context.Context) error {
			runs.Add(1)
			return nil
		})

	r.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, runs.Load())
}
