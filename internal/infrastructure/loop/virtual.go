// Package loop provides the page task schedulers.
package loop

import (
	"sort"
	"sync"
	"time"

	"github.com/bnema/adshield/internal/application/port"
)

const minInterval = time.Millisecond

type timer struct {
	id     port.TimerID
	when   time.Time
	seq    uint64
	period time.Duration
	fn     func()
}

// Virtual is a deterministic scheduler driven by Advance. Timers due at
// the same instant run in scheduling order.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	nextID port.TimerID
	seq    uint64
	timers map[port.TimerID]*timer
}

var _ port.Scheduler = (*Virtual)(nil)

// NewVirtual creates a virtual scheduler starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start, timers: make(map[port.TimerID]*timer)}
}

func (v *Virtual) schedule(fn func(), delay, period time.Duration) port.TimerID {
	v.mu.Lock()
	defer v.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	v.nextID++
	v.seq++
	v.timers[v.nextID] = &timer{id: v.nextID, when: v.now.Add(delay), seq: v.seq, period: period, fn: fn}
	return v.nextID
}

// SetTimeout implements port.Scheduler.
func (v *Virtual) SetTimeout(fn func(), delay time.Duration) port.TimerID {
	return v.schedule(fn, delay, 0)
}

// SetInterval implements port.Scheduler.
func (v *Virtual) SetInterval(fn func(), period time.Duration) port.TimerID {
	if period < minInterval {
		period = minInterval
	}
	return v.schedule(fn, period, period)
}

// ClearTimer implements port.Scheduler.
func (v *Virtual) ClearTimer(id port.TimerID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.timers, id)
}

// Now implements port.Scheduler.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of scheduled timers.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// next pops the earliest timer due at or before deadline.
func (v *Virtual) next(deadline time.Time) *timer {
	v.mu.Lock()
	defer v.mu.Unlock()

	var due []*timer
	for _, t := range v.timers {
		if !t.when.After(deadline) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].when.Equal(due[j].when) {
			return due[i].seq < due[j].seq
		}
		return due[i].when.Before(due[j].when)
	})

	t := due[0]
	if t.when.After(v.now) {
		v.now = t.when
	}
	if t.period > 0 {
		v.seq++
		t.when = t.when.Add(t.period)
		t.seq = v.seq
	} else {
		delete(v.timers, t.id)
	}
	return t
}

// Advance moves the clock forward by d, running every timer that falls
// due on the way, including timers scheduled by those callbacks.
func (v *Virtual) Advance(d time.Duration) {
	deadline := v.Now().Add(d)
	for {
		t := v.next(deadline)
		if t == nil {
			break
		}
		t.fn()
	}

	v.mu.Lock()
	if deadline.After(v.now) {
		v.now = deadline
	}
	v.mu.Unlock()
}

// RunPending runs every task due now without moving the clock.
func (v *Virtual) RunPending() {
	v.Advance(0)
}
