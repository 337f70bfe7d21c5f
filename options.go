package forth

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/flashforth/forth/internal/flushio"
)

// Option configures a VM at construction time, in the teacher's
// functional-options style.
type Option interface{ apply(vm *VM) }

var defaultOptions = Options(
	outputOption{ioutil.Discard},
)

// Options flattens and filters a list of options, so that nil entries and
// nested Options values compose cleanly.
func Options(opts ...Option) Option {
	var res optionList
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case optionList:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*VM) {}

type optionList []Option

func (opts optionList) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (f withLogfn) apply(vm *VM) { vm.logfn = f }

// WithLogf installs a trace/diagnostic sink.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type inputOption struct {
	r    io.Reader
	name string
}

func (i inputOption) apply(vm *VM) {
	name := i.name
	if name == "" {
		name = nameOf(i.r)
	}
	vm.logf("input", "push %v", name)
	if err := vm.input.Push(i.r, name); err != nil {
		vm.logf("input", "push %v failed: %v", name, err)
	}
}

// WithInput pushes r as an input source at startup.
func WithInput(r io.Reader) Option { return inputOption{r: r} }

// WithNamedInput pushes r as an input source named name.
func WithNamedInput(r io.Reader, name string) Option { return inputOption{r: r, name: name} }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return "<unnamed>"
}

type outputOption struct{ w io.Writer }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.w)
	if cl, ok := o.w.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

// WithOutput sets the VM's output stream.
func WithOutput(w io.Writer) Option { return outputOption{w} }

type teeOption struct{ w io.Writer }

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.w))
	if cl, ok := o.w.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

// WithTee additionally mirrors output to w.
func WithTee(w io.Writer) Option { return teeOption{w} }

type memLimitOption uint

func (lim memLimitOption) apply(vm *VM) {
	if lim > 0 {
		vm.arena.Init(uint(lim))
	}
}

// WithArenaSize fixes the flash arena's size in cells.
func WithArenaSize(cells uint) Option { return memLimitOption(cells) }

type stackCapOption struct{ data, ret, user int }

func (c stackCapOption) apply(vm *VM) {
	if c.data > 0 {
		vm.data = NewStack("data", c.data, vm.checked)
	}
	if c.ret > 0 {
		vm.ret = NewStack("return", c.ret, vm.checked)
	}
	if c.user > 0 {
		vm.user = NewStack("user", c.user, vm.checked)
	}
}

// WithStackCapacity overrides the data/return/user stack depths (0 keeps
// the default for that stack).
func WithStackCapacity(data, ret, user int) Option { return stackCapOption{data, ret, user} }

type checkedOption bool

func (c checkedOption) apply(vm *VM) {
	vm.checked = bool(c)
	for _, s := range []*Stack{vm.data, vm.ret, vm.user} {
		s.checked = bool(c)
	}
}

// WithStackChecks toggles the checked/unchecked build distinction of
// spec.md §3 (default: checked).
func WithStackChecks(checked bool) Option { return checkedOption(checked) }

type offPathOption string

func (o offPathOption) apply(vm *VM) { vm.offPath = string(o) }

// WithOffPath sets the OFF_PATH include-search directory.
func WithOffPath(path string) Option { return offPathOption(path) }

type oneShotOption string

func (o oneShotOption) apply(vm *VM) { vm.oneShotWord = string(o) }

// WithOneShotWord schedules word to run once after the primary input
// source drains (-x, spec.md §6).
func WithOneShotWord(word string) Option { return oneShotOption(word) }

type timerOption struct {
	word   string
	period time.Duration
}

func (o timerOption) apply(vm *VM) {
	vm.pendingTimerWord = o.word
	vm.pendingTimerPeriod = o.period
}

// WithTimer schedules word to run every period once Run starts, via the
// bounded internal/itimer collaborator.
func WithTimer(word string, period time.Duration) Option { return timerOption{word, period} }
