package port

import "time"

// TimerID identifies a scheduled callback.
type TimerID int64

// Scheduler is the page's task queue. All page-context components run
// their callbacks through it; callbacks never run concurrently.
type Scheduler interface {
	// SetTimeout runs fn once after delay, on a later task.
	SetTimeout(fn func(), delay time.Duration) TimerID

	// SetInterval runs fn every period until cleared.
	SetInterval(fn func(), period time.Duration) TimerID

	// ClearTimer cancels a timeout or interval. Unknown ids are ignored.
	ClearTimer(id TimerID)

	// Now returns the scheduler's current time.
	Now() time.Time
}
