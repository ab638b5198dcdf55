package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAllowsFirstPublish(t *testing.T) {
	th := newThrottle(10 * time.Second)
	assert.True(t, th.allow("transaction.pending"))
}

func TestThrottleBlocksWithinInterval(t *testing.T) {
	now := time.Now()
	th := newThrottle(10 * time.Second)
	th.now = func() time.Time { return now }

	assert.True(t, th.allow("transaction.pending"))
	now = now.Add(5 * time.Second)
	assert.False(t, th.allow("transaction.pending"))
}

func TestThrottleAllowsAfterInterval(t *testing.T) {
	now := time.Now()
	th := newThrottle(10 * time.Second)
	th.now = func() time.Time { return now }

	assert.True(t, th.allow("transaction.pending"))
	now = now.Add(11 * time.Second)
	assert.True(t, th.allow("transaction.pending"))
}

func TestThrottleTracksEventsIndependently(t *testing.T) {
	now := time.Now()
	th := newThrottle(10 * time.Second)
	th.now = func() time.Time { return now }

	assert.True(t, th.allow("transaction.pending"))
	assert.True(t, th.allow("session.closed"))
	assert.False(t, th.allow("transaction.pending"))
}
