package forth

// beginColon implements ':': reads the next token as the new word's name
// and opens a colon definition at the current Here, entering compiling
// state. The name is stored as a Go string in the new dictionary entry; it
// is not copied into the arena's string cache.
func (vm *VM) beginColon() error {
	name, err := vm.token()
	if err != nil {
		return errf(":", CodeNoInput, "%v", err)
	}
	vm.dict.define(dictEntry{text: name, flag: flagNormal, kind: codeColon, body: vm.arena.Here()})
	vm.state = stateCompiling
	return nil
}

// endColon implements ';': compiles the null terminator and leaves
// compiling state.
func (vm *VM) endColon() error {
	if vm.state != stateCompiling {
		return errc(";", CodeBadState)
	}
	if err := vm.arena.Compile(0); err != nil {
		return errf(";", CodeNoSpace, "%v", err)
	}
	vm.state = stateInteractive
	return nil
}

// immediate flags the most recently defined word so the outer interpreter
// executes it even while compiling.
func (vm *VM) immediate() error {
	idx := vm.dict.last()
	e := vm.dict.entry(idx)
	e.flag = flagImmediate
	vm.dict.setEntry(idx, e)
	return nil
}

// tick implements ''': reads the next token and pushes its dictionary
// index (the spec's execution token), failing with CodeNoWord if
// undefined.
func (vm *VM) tick() error {
	name, err := vm.token()
	if err != nil {
		return errf("'", CodeNoInput, "%v", err)
	}
	idx := vm.dict.lookup(name)
	if idx == 0 {
		return errf(name, CodeNoWord, "undefined")
	}
	return vm.data.Push(int(idx))
}

// execWord implements EXECUTE: pop an execution token and dispatch it.
func (vm *VM) execWord() error {
	idx, err := vm.data.Pop()
	if err != nil {
		return err
	}
	return vm.execute(uint(idx))
}

// leaveInterp implements '[': drop to interactive state mid colon
// definition, remembering that we should return to compiling on ']'.
func (vm *VM) leaveInterp() error {
	vm.savedState = vm.state
	vm.state = stateInteractive
	return nil
}

// enterCompile implements ']': resume the compiling state saved by '['.
func (vm *VM) enterCompile() error {
	vm.state = stateCompiling
	return nil
}

// compileQuoted implements the body shared by ." and S": read a
// "-delimited string, cache it in the arena, and -- while compiling --
// compile the opcode that will reproduce it at run time. Outside
// compilation it takes effect immediately, and since nothing keeps the
// string around past that one use, the cache entry is released again
// (Uncache) rather than leaking one string-cache slot per interpreted
// literal.
func (vm *VM) compileQuoted(asType bool) error {
	s, err := vm.readDelimited('"')
	if err != nil {
		return errf(`"`, CodeBadString, "%v", err)
	}
	addr, err := vm.arena.Cache(s)
	if err != nil {
		return errf(`"`, CodeNoSpace, "%v", err)
	}
	content := int(addr) + 1

	if vm.state != stateCompiling {
		if asType {
			for _, r := range s {
				if err := vm.writeRune(r); err != nil {
					vm.arena.Uncache(addr)
					return err
				}
			}
			if err := vm.arena.Uncache(addr); err != nil {
				return errf(`."`, CodeUnsave, "%v", err)
			}
			return nil
		}
		if err := vm.data.Push(content); err != nil {
			return err
		}
		if err := vm.data.Push(len(s)); err != nil {
			return err
		}
		if err := vm.arena.Uncache(addr); err != nil {
			return errf(`S"`, CodeUnsave, "%v", err)
		}
		return nil
	}

	if asType {
		if err := vm.arena.Compile(opDotQuote); err != nil {
			return errf(`."`, CodeNoSpace, "%v", err)
		}
		return vm.arena.Compile(content)
	}
	if err := vm.arena.Compile(opSQuote); err != nil {
		return errf(`S"`, CodeNoSpace, "%v", err)
	}
	if err := vm.arena.Compile(content); err != nil {
		return err
	}
	return vm.arena.Compile(len(s))
}

// dotParen implements '.(' : always prints the text up to the next ')'
// immediately, regardless of interpreter state.
func (vm *VM) dotParen() error {
	s, err := vm.readDelimited(')')
	if err != nil {
		return errf(".(", CodeBadString, "%v", err)
	}
	return vm.writeRuneString(s)
}

var compilerPrimitives = []primitive{
	{":", flagNormal, (*VM).beginColon},
	{";", flagImmediate, (*VM).endColon},
	{"IMMEDIATE", flagNormal, (*VM).immediate},
	{"'", flagNormal, (*VM).tick},
	{"EXECUTE", flagNormal, (*VM).execWord},
	{"[", flagImmediate, (*VM).leaveInterp},
	{"]", flagNormal, (*VM).enterCompile},
	{`."`, flagImmediate, func(vm *VM) error { return vm.compileQuoted(true) }},
	{`S"`, flagImmediate, func(vm *VM) error { return vm.compileQuoted(false) }},
	{`.(`, flagImmediate, (*VM).dotParen},
}
