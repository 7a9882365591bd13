package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/logging"
)

// ErrStopped is returned by Run when Stop was called.
var ErrStopped = errors.New("event loop stopped")

// Loop is a real-time event loop. Every callback runs on the goroutine
// executing Run, so page components never need locking.
type Loop struct {
	tasks  chan func()
	stop   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	nextID port.TimerID
	timers map[port.TimerID]*time.Timer
}

var _ port.Scheduler = (*Loop)(nil)

// New creates a loop with a task queue of the given capacity.
func New(queue int) *Loop {
	if queue <= 0 {
		queue = 256
	}
	return &Loop{
		tasks:  make(chan func(), queue),
		stop:   make(chan struct{}),
		timers: make(map[port.TimerID]*time.Timer),
	}
}

// Run processes tasks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "event-loop").Logger()
	log.Debug().Msg("event loop started")
	defer l.clearAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return ErrStopped
		case task := <-l.tasks:
			l.runTask(task, &log)
		}
	}
}

func (l *Loop) runTask(task func(), log *zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	task()
}

// Post queues fn to run on the loop goroutine. It drops the task once
// the loop is stopped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stop:
	case l.tasks <- fn:
	}
}

// Stop terminates Run and cancels all timers.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// SetTimeout implements port.Scheduler.
func (l *Loop) SetTimeout(fn func(), delay time.Duration) port.TimerID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.timers[id] = time.AfterFunc(delay, func() {
		l.mu.Lock()
		_, live := l.timers[id]
		delete(l.timers, id)
		l.mu.Unlock()
		if live {
			l.Post(fn)
		}
	})
	return id
}

// SetInterval implements port.Scheduler.
func (l *Loop) SetInterval(fn func(), period time.Duration) port.TimerID {
	if period < minInterval {
		period = minInterval
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	var tick func()
	tick = func() {
		l.mu.Lock()
		t, live := l.timers[id]
		if live {
			t.Reset(period)
		}
		l.mu.Unlock()
		if live {
			l.Post(fn)
		}
	}
	l.timers[id] = time.AfterFunc(period, tick)
	return id
}

// ClearTimer implements port.Scheduler.
func (l *Loop) ClearTimer(id port.TimerID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[id]; ok {
		t.Stop()
		delete(l.timers, id)
	}
}

// Now implements port.Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

func (l *Loop) clearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
}
