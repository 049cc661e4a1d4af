// Package fixtures creates the entities that a test needs, parents first, and removes them
// again in reverse order when the test ends.
package fixtures

import (
	"context"
	"fmt"
	"sync"
)

// Teardown is a stack of release steps. Steps are added as entities are created and run in
// reverse order by Run. It is safe for concurrent use.
type Teardown struct {
	// OnWarning, if set, is called for each step that fails during Run.
	OnWarning func(error)

	lock  sync.Mutex
	steps []*Handle
}

// Handle is one registered release step.
type Handle struct {
	description string
	release     func(context.Context) error
	lock        sync.Mutex
	released    bool
}

// Add registers a release step and returns a handle that can run it early.
func (td *Teardown) Add(description string, release func(context.Context) error) *Handle {
	h := &Handle{description: description, release: release}
	td.lock.Lock()
	td.steps = append(td.steps, h)
	td.lock.Unlock()
	return h
}

// Release runs the step now. Once a step has succeeded, later calls, including the one made
// by Teardown.Run, do nothing and return nil. A step that fails stays registered, so Run
// tries it again after the steps added later, such as the deletion of children, have run.
func (h *Handle) Release(ctx context.Context) (err error) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.released {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		h.released = err == nil
	}()
	return h.release(ctx)
}

// Released reports whether the step has run successfully.
func (h *Handle) Released() bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.released
}

func (h *Handle) String() string {
	return h.description
}

// Run releases every remaining step, most recent first. A failing step does not stop the
// others; its error is passed to OnWarning and included in the returned slice. Steps that
// were already released successfully are skipped. The Teardown is empty afterward.
func (td *Teardown) Run(ctx context.Context) []error {
	td.lock.Lock()
	steps := td.steps
	td.steps = nil
	td.lock.Unlock()

	var warnings []error
	for i := len(steps) - 1; i >= 0; i-- {
		h := steps[i]
		if err := h.Release(ctx); err != nil {
			warning := fmt.Errorf("cleanup of %s failed: %w", h.description, err)
			warnings = append(warnings, warning)
			if td.OnWarning != nil {
				td.OnWarning(warning)
			}
		}
	}
	return warnings
}

// Len returns the number of registered steps that have not been run by Run yet.
func (td *Teardown) Len() int {
	td.lock.Lock()
	defer td.lock.Unlock()
	return len(td.steps)
}
