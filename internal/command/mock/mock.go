package mock

import (
	"context"
	"sync"
)

// Runner implements a mock command runner that records its invocations
type Runner struct {
	Stdout []byte
	Err    error

	mutex sync.Mutex
	calls []Call
}

// Call is a recorded invocation
type Call struct {
	Args  []string
	Stdin []byte
}

// Run records the invocation and returns the configured output
func (r *Runner) Run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	r.mutex.Lock()
	r.calls = append(r.calls, Call{Args: args, Stdin: stdin})
	r.mutex.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	return r.Stdout, nil
}

// Calls returns the recorded invocations
func (r *Runner) Calls() []Call {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]Call(nil), r.calls...)
}

// LastCall returns the most recent invocation
func (r *Runner) LastCall() (Call, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.calls) == 0 {
		return Call{}, false
	}

	return r.calls[len(r.calls)-1], true
}
