package questionnaire

import "time"

// Task is a scheduled function that can be cancelled before it fires
type Task interface {
	// Stop cancels the task and reports whether it was still pending
	Stop() bool
}

// Scheduler runs a function once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// TimerScheduler returns a Scheduler backed by time.AfterFunc
func TimerScheduler() Scheduler {
	return timerScheduler{}
}
