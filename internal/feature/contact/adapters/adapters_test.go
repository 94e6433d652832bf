package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryClipboard(t *testing.T) {
	var c MemoryClipboard

	assert.NoError(t, c.WriteText(context.Background(), "me@example.dev"))
	assert.Equal(t, "me@example.dev", c.Text())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.WriteText(ctx, "other"), context.Canceled)
	assert.Equal(t, "me@example.dev", c.Text())
}

func TestClock_AfterFunc(t *testing.T) {
	fired := make(chan struct{})
	Clock{}.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	stopped := Clock{}.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	assert.True(t, stopped.Stop())
}
