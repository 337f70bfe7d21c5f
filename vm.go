// Package forth implements the core of a single-image Forth system: a
// dictionary and threaded-code execution engine, a compile-time
// control-flow resolver, and a reset/recovery and input-stack model, all
// owned by a single VM value so that primitives become ordinary methods
// and tests may instantiate as many independent VMs as they like (Design
// Note "global mutable state").
package forth

import (
	"io"
	"time"

	"github.com/flashforth/forth/internal/flushio"
	"github.com/flashforth/forth/internal/input"
	"github.com/flashforth/forth/internal/logio"
	"github.com/flashforth/forth/internal/mem"
	"github.com/flashforth/forth/internal/runeio"
)

// state is the outer interpreter's mode, spec.md §3.
type state uint8

const (
	stateInteractive state = iota
	stateCompiling
	stateInterpret
	stateImmediate
)

func (s state) String() string {
	switch s {
	case stateInteractive:
		return "interactive"
	case stateCompiling:
		return "compiling"
	case stateInterpret:
		return "interpret"
	case stateImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// VM is the single owner of all process-wide state that the spec
// describes as global: the three stacks, the flash arena, the
// dictionary, the current radix, the trace/log sink, and the input/output
// streams.
type VM struct {
	logging

	out     flushio.WriteFlusher
	closers []io.Closer
	input   *input.Stack
	offPath string

	arena mem.Arena
	dict  *dictionary
	prims []primitive

	data *Stack
	ret  *Stack
	user *Stack

	ctrl        *Stack   // compile-time-only IF/BEGIN/WHILE address bookkeeping
	leaveFixups [][]uint // one slice per open DO, collecting LEAVE patch addresses

	ip         uint   // current threaded pointer into the arena
	callFrames []uint // entry addresses of the active colon bodies, see runColon

	state      state
	savedState state // [ saves here, ] restores
	base       int
	checked    bool

	picture pictureQueue

	pendingSignal chan resetReason // set by the signal watcher, drained by checkSignal
	resetReason   resetReason

	oneShotWord string // -x WORD, run once after primary input drains
	ranOneShot  bool

	timer              *intervalTimer
	pendingTimerWord   string
	pendingTimerPeriod time.Duration
}

// logging is carried over from the teacher almost unchanged: a
// prefix-aware wrapper around a leveled logf function, used both for
// TRACE output and for reset/error diagnostics.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
	funcWidth int
	codeWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		log.logfn(mark+" "+mess, args...)
	} else {
		log.logfn(mark + " " + mess)
	}
}

// New constructs a VM with the given options applied over sensible
// defaults (discarded output, stack checking on, base 10, a 4-deep input
// stack, a 64Ki-cell arena).
func New(opts ...Option) *VM {
	vm := &VM{
		dict:    newDictionary(),
		data:    NewStack("data", 4096, true),
		ret:     NewStack("return", 4096, true),
		user:    NewStack("user", 256, true),
		ctrl:    NewStack("control", 64, true),
		checked: true,
		base:    10,
		input:   input.NewStack(input.MaxDepth),
	}
	vm.arena.Init(64 * 1024)
	vm.picture.init(4, 256)
	defaultOptions.apply(vm)
	Options(opts...).apply(vm)
	vm.installPrimitives()
	return vm
}

// SetLogf installs a leveled logf sink, e.g. from internal/logio.
func (vm *VM) SetLogf(logfn func(mess string, args ...interface{})) { vm.logfn = logfn }

// State reports the outer interpreter's current mode.
func (vm *VM) State() string { return vm.state.String() }

// Base reports the current numeric radix.
func (vm *VM) Base() int { return vm.base }

// writeRune writes one rune to the configured output, translating
// non-ASCII control ranges to their classic 7-bit escapes.
func (vm *VM) writeRune(r rune) error {
	_, err := runeio.WriteANSIRune(vm.out, r)
	return err
}

// LevelLogf adapts a *logio.Logger level into the VM's logfn shape,
// exported for cmd/forth.
func LevelLogf(log *logio.Logger, level string) func(string, ...interface{}) {
	return log.Leveledf(level)
}
