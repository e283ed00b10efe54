package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback run before the task starts or after it ends.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run before the task. A failing start hook
// prevents the task from running.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run after the task, within the graceful
// timeout. Stop hooks run even when the task failed.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
