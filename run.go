package forth

import (
	"context"
	"io"

	"github.com/flashforth/forth/internal/panicerr"
)

// Run starts the outer interpreter loop, bounding the signal watcher and
// any interval timer to ctx. It returns nil when the primary input source
// (and any configured one-shot word) is exhausted, or BYE was executed --
// both errBye and the plain io.EOF that marks ordinary input exhaustion are
// a clean exit, not a failure. The whole loop runs under panicerr.Recover,
// so a primitive that panics instead of returning a *VMError surfaces as an
// ordinary error rather than crashing the host process.
func (vm *VM) Run(ctx context.Context) error {
	stopSignals := vm.watchSignals(ctx)
	defer stopSignals()
	defer vm.StopTimer()

	if vm.pendingTimerWord != "" {
		vm.StartTimer(ctx, vm.pendingTimerWord, vm.pendingTimerPeriod)
	}

	err := panicerr.Recover("VM", vm.quit)
	if err == errBye || err == io.EOF {
		return nil
	}
	return err
}

// Close flushes output and releases any open input sources and writers.
func (vm *VM) Close() error {
	var first error
	if vm.out != nil {
		if err := vm.out.Flush(); err != nil && first == nil {
			first = err
		}
	}
	for _, c := range vm.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
