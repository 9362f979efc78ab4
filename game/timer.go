package game

import "time"

// Timer is a cancellable one-shot timer handle.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules callbacks. Injected so tests can fire timers
// deterministically.
type TimerFactory interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realTimerFactory struct{}

func (realTimerFactory) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func NewTimerFactory() TimerFactory {
	return realTimerFactory{}
}
