package forth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/flashforth/forth/internal/itimer"
)

// intervalTimer is the VM's handle on one running itimer.After goroutine:
// it communicates with the interpreter only through a pending flag,
// exactly the reentrancy contract of spec.md's Design Notes -- the timer
// goroutine never touches the stacks or dictionary directly.
type intervalTimer struct {
	cancel  func() error
	word    string
	pending int32
}

// StartTimer wires word to fire every d, bounded to ctx. Any previously
// running timer is stopped first.
func (vm *VM) StartTimer(ctx context.Context, word string, d time.Duration) {
	vm.StopTimer()
	t := &intervalTimer{word: word}
	t.cancel = itimer.After(ctx, d, func() { atomic.StoreInt32(&t.pending, 1) })
	vm.timer = t
}

// StopTimer cancels any running timer and waits for its goroutine to exit.
func (vm *VM) StopTimer() error {
	if vm.timer == nil {
		return nil
	}
	err := vm.timer.cancel()
	vm.timer = nil
	return err
}

// checkTimer runs the timer word once if it has fired since the last
// check, called between primitive dispatches from runColon and between
// tokens from quit -- never from inside a primitive, so a fired timer
// never interrupts one in progress.
func (vm *VM) checkTimer() error {
	if vm.timer == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&vm.timer.pending, 1, 0) {
		return nil
	}
	idx := vm.dict.lookup(vm.timer.word)
	if idx == 0 {
		return nil
	}
	return vm.execute(idx)
}
