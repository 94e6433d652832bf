package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	calls atomic.Int32
	err   error
}

func (b *fakeBoard) Rebuild(ctx context.Context) error {
	b.calls.Add(1)
	return b.err
}

func TestRegisterRebuild(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "daily at midnight", spec: "0 0 0 * * *"},
		{name: "every second", spec: "* * * * * *"},
		{name: "five fields rejected", spec: "0 0 * * *", wantErr: true},
		{name: "garbage", spec: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(context.Background(), &fakeBoard{})
			err := s.RegisterRebuild(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, s.cron.Entries(), 1)
		})
	}
}

func TestRunRebuildNow(t *testing.T) {
	board := &fakeBoard{}
	s := New(context.Background(), board)

	s.RunRebuildNow()
	assert.Equal(t, int32(1), board.calls.Load())

	board.err = errors.New("boom")
	assert.NotPanics(t, s.RunRebuildNow, "failures are logged")
	assert.Equal(t, int32(2), board.calls.Load())
}

func TestScheduler_RunsJobs(t *testing.T) {
	board := &fakeBoard{}
	s := New(context.Background(), board)
	require.NoError(t, s.RegisterRebuild("* * * * * *"))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return board.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
