package server

import (
	"sync"
	"time"
)

// FunctionDelayer manages functions, identified by keys, such that they are called after a set period of time.
// If a request to schedule a function call uses a key for a function that has already been scheduled, it resets
// the delay for that call and replaces the function.  For example, consider a FunctionDelayer f with a configured
// delay of 3 seconds.  If f.Delay("foo", myFunc) is invoked only once, myFunc() will be called 3 seconds later.  If
// f.Delay("bar", fn1) is invoked once, and then f.Delay("bar", fn2) is invoked 2 seconds later, only fn2() will be
// called, 3 seconds after the second f.Delay invocation (for a total of 5 seconds after the first invocation).
type FunctionDelayer struct {
	sync.Mutex
	Duration time.Duration
	pending  map[string]*delayed
}

type delayed struct {
	timer *time.Timer
	fn    func()
}

// NewFunctionDelayer creates a new FunctionDelayer with the specified duration.
func NewFunctionDelayer(duration time.Duration) *FunctionDelayer {
	f := new(FunctionDelayer)
	f.Duration = duration
	f.pending = make(map[string]*delayed)
	return f
}

// Delay schedules a function to be called after FunctionDelayer's Duration has elapsed.  Subsequent calls to
// Delay with the same key reset the duration timer if it is still active, and the function passed last is the
// one invoked when the timer expires.
func (f *FunctionDelayer) Delay(key string, fn func()) {
	f.Lock()
	defer f.Unlock()

	if d, ok := f.pending[key]; ok && d.timer.Stop() {
		// timer still pending, so swap the function and restart it
		d.fn = fn
		d.timer.Reset(f.Duration)
		return
	}
	f.addNewTimer(key, fn)
}

// Pending returns the number of keys waiting for their timer to fire.
func (f *FunctionDelayer) Pending() int {
	f.Lock()
	defer f.Unlock()
	return len(f.pending)
}

// Stop cancels every pending call.
func (f *FunctionDelayer) Stop() {
	f.Lock()
	defer f.Unlock()
	for key, d := range f.pending {
		d.timer.Stop()
		delete(f.pending, key)
	}
}

func (f *FunctionDelayer) addNewTimer(key string, fn func()) {
	d := &delayed{fn: fn}
	d.timer = time.AfterFunc(f.Duration, func() {
		f.Lock()
		run := d.fn
		if f.pending[key] == d {
			delete(f.pending, key)
		}
		f.Unlock()
		run()
	})
	f.pending[key] = d
}
