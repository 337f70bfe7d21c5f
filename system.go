package forth

import "errors"

// errBye is returned by BYE to unwind straight out of quit without being
// reported as an error.
var errBye = errors.New("bye")

func (vm *VM) doWarm() error { vm.warm(); return nil }
func (vm *VM) doCold() error { vm.cold(); return nil }
func (vm *VM) doBye() error  { return errBye }

// forget implements FORGET NAME: looks NAME up, refuses to forget a
// primitive (CodeNoWord, the same code spec.md uses for "no such
// definable word"), and otherwise truncates the dictionary and rolls the
// arena's Here back to NAME's body address. StringData is not rolled back:
// strings cached by the forgotten words stay in the string cache.
func (vm *VM) forget() error {
	name, err := vm.token()
	if err != nil {
		return errf("FORGET", CodeNoInput, "%v", err)
	}
	idx := vm.dict.lookup(name)
	if idx == 0 {
		return errf(name, CodeNoWord, "undefined")
	}
	e := vm.dict.entry(idx)
	if e.kind == codePrimitive {
		return errf(name, CodeNoWord, "cannot forget a primitive")
	}
	vm.arena.SetHere(e.body)
	vm.dict.forgetFrom(idx)
	return nil
}

var systemPrimitives = []primitive{
	{"WARM", flagNormal, (*VM).doWarm},
	{"COLD", flagNormal, (*VM).doCold},
	{"BYE", flagNormal, (*VM).doBye},
	{"FORGET", flagNormal, (*VM).forget},
	{"WORDS", flagNormal, (*VM).words},
	{"SEE", flagNormal, (*VM).see},
	{"INCLUDE", flagNormal, (*VM).include},
}
