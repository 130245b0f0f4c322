package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeExpirer struct {
	calls    atomic.Int32
	count    int
	err      error
	deadline bool
}

func (f *fakeExpirer) ExpireOverdue(ctx context.Context) (int, error) {
	f.calls.Add(1)
	_, f.deadline = ctx.Deadline()
	return f.count, f.err
}

func TestSweepJob(t *testing.T) {
	tests := []struct {
		name    string
		expirer *fakeExpirer
		wantLog string
		level   string
	}{
		{name: "reports expired count", expirer: &fakeExpirer{count: 3}, wantLog: "Subscription sweep finished", level: "info"},
		{name: "logs failures", expirer: &fakeExpirer{err: errors.New("db down")}, wantLog: "Subscription sweep failed", level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)

			sweepJob(tt.expirer, zap.New(core), time.Minute).Run()

			assert.Equal(t, int32(1), tt.expirer.calls.Load())
			assert.True(t, tt.expirer.deadline)
			entries := logs.FilterMessage(tt.wantLog).All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level.String())
		})
	}
}

func TestNewScheduler_SecondsSpec(t *testing.T) {
	scheduler := newScheduler(zap.NewNop())

	_, err := scheduler.AddJob("0 */15 * * * *", sweepJob(&fakeExpirer{}, zap.NewNop(), time.Second))
	assert.NoError(t, err)

	_, err = scheduler.AddJob("not a schedule", sweepJob(&fakeExpirer{}, zap.NewNop(), time.Second))
	assert.Error(t, err)
}

func TestNewScheduler_RunsJob(t *testing.T) {
	scheduler := newScheduler(zap.NewNop())
	expirer := &fakeExpirer{}

	_, err := scheduler.AddJob("* * * * * *", sweepJob(expirer, zap.NewNop(), time.Second))
	require.NoError(t, err)

	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return expirer.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
