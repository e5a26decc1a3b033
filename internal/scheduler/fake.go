package scheduler

import (
	"sync"
	"time"
)

// Fake is a Scheduler for tests: tasks never fire on their own, the test
// fires them explicitly with Fire or FireAll.
type Fake struct {
	mu    sync.Mutex
	tasks []*FakeTask
}

// FakeTask records one scheduled call.
type FakeTask struct {
	Name  string
	Delay time.Duration

	mu        sync.Mutex
	fn        func()
	cancelled bool
	fired     bool
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) After(d time.Duration, name string, fn func()) Task {
	t := &FakeTask{Name: name, Delay: d, fn: fn}
	f.mu.Lock()
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()
	return t
}

// Tasks returns every task scheduled so far, fired or not.
func (f *Fake) Tasks() []*FakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeTask(nil), f.tasks...)
}

// Pending returns tasks that have neither fired nor been cancelled.
func (f *Fake) Pending() []*FakeTask {
	var pending []*FakeTask
	for _, t := range f.Tasks() {
		t.mu.Lock()
		live := !t.fired && !t.cancelled
		t.mu.Unlock()
		if live {
			pending = append(pending, t)
		}
	}
	return pending
}

// FireAll fires every pending task in scheduling order.
func (f *Fake) FireAll() {
	for _, t := range f.Pending() {
		t.Fire()
	}
}

func (t *FakeTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Fire runs the task body unless it was cancelled or already fired. The
// cancelled case mirrors time.AfterFunc semantics after a successful Stop.
func (t *FakeTask) Fire() {
	t.mu.Lock()
	if t.fired || t.cancelled {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// Fired reports whether the task body ran.
func (t *FakeTask) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Cancelled reports whether Cancel stopped the task before it fired.
func (t *FakeTask) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}
