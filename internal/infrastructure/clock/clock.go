package clock

import (
	"sync"
	"time"

	"github.com/lastclick-network/lastclick/internal/core/ports"
)

type wallClock struct{}

func NewWallClock() ports.Clock {
	return wallClock{}
}

func (wallClock) Now() int64 {
	return time.Now().Unix()
}

// ManualClock only moves when told to.
type ManualClock struct {
	lock sync.RWMutex
	now  int64
}

func NewManualClock(now int64) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() int64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.now
}

func (c *ManualClock) Set(now int64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

func (c *ManualClock) Advance(seconds int64) int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now += seconds
	return c.now
}
