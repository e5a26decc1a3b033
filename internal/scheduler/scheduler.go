// Package scheduler provides cancellable deferred tasks for lifecycle side
// effects such as ticket auto-close and delayed channel deletion.
package scheduler

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Task is a scheduled side effect. Cancel stops a still-pending task and
// reports whether it was stopped; cancelling a fired or already-cancelled
// task is a no-op returning false.
type Task interface {
	Cancel() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	After(d time.Duration, name string, fn func()) Task
}

type timerScheduler struct{}

// New returns the production scheduler backed by time.AfterFunc.
func New() Scheduler {
	return timerScheduler{}
}

type timerTask struct {
	timer *time.Timer
}

func (t *timerTask) Cancel() bool {
	return t.timer.Stop()
}

func (timerScheduler) After(d time.Duration, name string, fn func()) Task {
	id := uuid.NewString()
	slog.Debug("task scheduled", "task", name, "id", id, "delay", d)
	timer := time.AfterFunc(d, func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in scheduled task",
					"task", name,
					"id", id,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	})
	return &timerTask{timer: timer}
}
