// ABOUTME: Clock abstraction for delayed demo effects
// ABOUTME: SystemClock wraps the time package; FakeClock advances virtual time in tests

package demo

import (
	"sync"
	"time"
)

// Clock supplies the current time and cancellable delayed tasks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending delayed task. Stop reports whether it prevented the task from running.
type Timer interface {
	Stop() bool
}

// SystemClock uses wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FakeClock is a manually advanced clock. Tasks run synchronously inside Advance.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask
	seq   int
}

type fakeTask struct {
	clock *FakeClock
	at    time.Time
	seq   int
	f     func()
	done  bool
}

// NewFakeClock starts a fake clock at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTask{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.tasks = append(c.tasks, t)
	return t
}

// Pending returns the number of tasks that have neither fired nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Advance moves the clock forward by d, running every task that comes due in
// deadline order. Tasks scheduled by a running task also fire if they fall due
// within the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		idx := -1
		for i, t := range c.tasks {
			if t.at.After(target) {
				continue
			}
			if idx < 0 || t.at.Before(c.tasks[idx].at) ||
				(t.at.Equal(c.tasks[idx].at) && t.seq < c.tasks[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			c.now = target
			c.mu.Unlock()
			return
		}

		task := c.tasks[idx]
		c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
		task.done = true
		if task.at.After(c.now) {
			c.now = task.at
		}
		c.mu.Unlock()

		task.f()
	}
}

func (t *fakeTask) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, other := range c.tasks {
		if other == t {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	return true
}
