package forth

// create implements CREATE: reads a name and defines it as a bare word
// whose execution semantics is "push my body address" (spec.md §4.5); no
// cells are allocated yet, so a following VARIABLE-style , or ALLOT lays
// out the word's data area immediately after.
func (vm *VM) create() error {
	name, err := vm.token()
	if err != nil {
		return errf("CREATE", CodeNoInput, "%v", err)
	}
	vm.dict.define(dictEntry{text: name, flag: flagNormal, kind: codeCreate, body: vm.arena.Here()})
	return nil
}

// constant implements CONSTANT: pops a value, reads a name, and defines a
// word that always pushes that value.
func (vm *VM) constant() error {
	v, err := vm.data.Pop()
	if err != nil {
		return err
	}
	name, err := vm.token()
	if err != nil {
		return errf("CONSTANT", CodeNoInput, "%v", err)
	}
	addr := vm.arena.Here()
	if err := vm.arena.Compile(v); err != nil {
		return errf("CONSTANT", CodeNoSpace, "%v", err)
	}
	vm.dict.define(dictEntry{text: name, flag: flagNormal, kind: codeConstant, body: addr})
	return nil
}

// variable implements VARIABLE: reads a name and defines a word holding
// one zero-initialized cell, whose address is pushed on execution.
func (vm *VM) variable() error {
	name, err := vm.token()
	if err != nil {
		return errf("VARIABLE", CodeNoInput, "%v", err)
	}
	addr := vm.arena.Here()
	if err := vm.arena.Compile(0); err != nil {
		return errf("VARIABLE", CodeNoSpace, "%v", err)
	}
	vm.dict.define(dictEntry{text: name, flag: flagNormal, kind: codeCreate, body: addr})
	return nil
}

// does implements DOES>'s compile-time half: it just compiles the opDoes
// sentinel. opDoes's runtime half (in runColon) does the actual work of
// retargeting the most recently CREATEd word and returning early.
func (vm *VM) does() error {
	if err := vm.arena.Compile(opDoes); err != nil {
		return errf("DOES>", CodeNoSpace, "%v", err)
	}
	return nil
}

var createPrimitives = []primitive{
	{"CREATE", flagNormal, (*VM).create},
	{"CONSTANT", flagNormal, (*VM).constant},
	{"VARIABLE", flagNormal, (*VM).variable},
	{"DOES>", flagImmediate, (*VM).does},
}
