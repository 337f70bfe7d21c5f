package forth

import "io"

// Reserved opcodes compiled into colon bodies alongside ordinary dictionary
// indices (which are always >=1). Because these sentinels are negative,
// they can never collide with a dictionary-entry pointer, so one arena cell
// serves as both "what kind of thread cell is this" and (for dictionary
// calls) "which word" -- Design Note "tagged variant" extended from the
// dictionary down into the threaded code itself.
const (
	opLiteral  = -1 // next cell: a literal value to push
	opBranch   = -2 // next cell: absolute arena address to resume at
	opQBranch  = -3 // next cell: absolute address; pops a flag, branches if zero
	opDo       = -4 // (do): pops index, then limit; pushes limit then index on the return stack (index on top)
	opLoop     = -5 // (loop): next cell: loop-body address to re-enter
	opPlusLoop = -6 // (+loop): next cell: loop-body address to re-enter
	opDotQuote = -7 // next cell: cached string content address; types it
	opSQuote   = -8 // next two cells: cached string content address, length; pushes them
	opDoes     = -9 // attaches everything after it, as a does-body, to the most recently CREATEd word, then returns
)

// execute dispatches a single dictionary entry: primitives call straight
// through to their Go implementation; CREATE/CONSTANT push their data cell;
// colon (and DOES>) words recurse into runColon, so that the Go call stack
// itself provides one instruction pointer per nested call, per Design Note
// "separate instruction pointer per frame" -- nothing needs to multiplex
// resume addresses onto the user-visible return stack.
func (vm *VM) execute(idx uint) error {
	if idx == 0 {
		return errc("EXECUTE", CodeNullPtr)
	}
	e := vm.dict.entry(idx)
	if e.flag == flagUndefined {
		return errf(e.text, CodeNoWord, "undefined")
	}
	if vm.logfn != nil {
		vm.logf("trace", "%v %v", vm.data.Snapshot(), e.text)
	}
	switch e.kind {
	case codePrimitive:
		if int(e.prim) >= len(vm.prims) {
			return errf(e.text, CodeNoWord, "unbound primitive")
		}
		return vm.prims[e.prim].fn(vm)
	case codeCreate:
		return vm.data.Push(int(e.body))
	case codeConstant:
		v, err := vm.arena.Load(e.body)
		if err != nil {
			return errf(e.text, CodeRange, "%v", err)
		}
		return vm.data.Push(v)
	case codeDoes:
		if err := vm.data.Push(int(e.body)); err != nil {
			return err
		}
		return vm.runColon(e.does)
	case codeColon:
		return vm.runColon(e.body)
	default:
		return errf(e.text, CodeNoWord, "unknown code kind")
	}
}

// runColon threads through one colon body starting at addr until it hits
// the null terminator, recursing into execute for nested calls. vm.ip
// always reflects the cell about to be fetched in the innermost frame, and
// vm.callFrames mirrors the Go call stack as a slice of entry addresses;
// both are bookkeeping only -- no code reads them back, and neither is
// consulted to resume execution.
func (vm *VM) runColon(addr uint) error {
	vm.callFrames = append(vm.callFrames, addr)
	defer func() { vm.callFrames = vm.callFrames[:len(vm.callFrames)-1] }()

	ip := addr
	for {
		vm.ip = ip
		if err := vm.checkTimer(); err != nil {
			return err
		}
		cell, err := vm.arena.Load(ip)
		if err != nil {
			return err
		}
		if cell == 0 {
			return nil
		}
		ip++

		switch cell {
		case opLiteral:
			v, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			if err := vm.data.Push(v); err != nil {
				return err
			}
		case opBranch:
			target, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip = uint(target)
		case opQBranch:
			target, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			flag, err := vm.data.Pop()
			if err != nil {
				return err
			}
			if flag == 0 {
				ip = uint(target)
			}
		case opDo:
			// ( limit index -- ): index is on top, per the ANS DO
			// convention, so it is popped first.
			index, err := vm.data.Pop()
			if err != nil {
				return err
			}
			limit, err := vm.data.Pop()
			if err != nil {
				return err
			}
			if err := vm.ret.Push(limit); err != nil {
				return err
			}
			if err := vm.ret.Push(index); err != nil {
				return err
			}
		case opLoop, opPlusLoop:
			target, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			step := 1
			if cell == opPlusLoop {
				step, err = vm.data.Pop()
				if err != nil {
					return err
				}
			}
			index, err := vm.ret.Pop()
			if err != nil {
				return err
			}
			limit, err := vm.ret.Pop()
			if err != nil {
				return err
			}
			next := index + step
			done := next == limit
			if step > 0 {
				done = done || (index < limit && next >= limit)
			} else if step < 0 {
				done = done || (index >= limit && next < limit)
			}
			if done {
				continue
			}
			if err := vm.ret.Push(limit); err != nil {
				return err
			}
			if err := vm.ret.Push(next); err != nil {
				return err
			}
			ip = uint(target)
		case opSQuote:
			saddr, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			slen, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			if err := vm.data.Push(saddr); err != nil {
				return err
			}
			if err := vm.data.Push(slen); err != nil {
				return err
			}
		case opDotQuote:
			saddr, err := vm.arena.Load(ip)
			if err != nil {
				return err
			}
			ip++
			s, err := vm.arena.String(uint(saddr) - 1)
			if err != nil {
				return err
			}
			for _, r := range s {
				if err := vm.writeRune(r); err != nil {
					return err
				}
			}
		case opDoes:
			idx := vm.dict.last()
			e := vm.dict.entry(idx)
			e.kind = codeDoes
			e.does = ip
			vm.dict.setEntry(idx, e)
			return nil
		default:
			if err := vm.execute(uint(cell)); err != nil {
				return err
			}
		}
	}
}

// interpretToken dispatches one token: a defined word is executed
// immediately if it is flagged immediate or the VM is interactive/
// interpreting, otherwise compiled as a call cell into the definition under
// construction. An undefined token is tried as a numeric or character
// literal; failing that, CodeNoWord is raised.
func (vm *VM) interpretToken(tok string) error {
	idx := vm.dict.lookup(tok)
	if idx != 0 {
		e := vm.dict.entry(idx)
		if vm.state != stateCompiling || e.flag == flagImmediate {
			return vm.execute(idx)
		}
		return vm.compileCall(idx)
	}

	if v, ok := parseNumber(tok, vm.base); ok {
		return vm.compileOrPushLiteral(v)
	}
	if v, ok := parseCharLiteral(tok); ok {
		return vm.compileOrPushLiteral(v)
	}
	return errf(tok, CodeNoWord, "undefined word")
}

func (vm *VM) compileCall(idx uint) error {
	if err := vm.arena.Compile(int(idx)); err != nil {
		return errf("compile", CodeNoSpace, "%v", err)
	}
	return nil
}

// compileOrPushLiteral either pushes v directly (interactive/interpret
// state) or compiles an opLiteral/value pair (compiling state).
func (vm *VM) compileOrPushLiteral(v int) error {
	if vm.state != stateCompiling {
		return vm.data.Push(v)
	}
	before := vm.arena.Here()
	if err := vm.arena.Compile(opLiteral); err != nil {
		return vm.rollbackBadLiteral(before, err)
	}
	if err := vm.arena.Compile(v); err != nil {
		return vm.rollbackBadLiteral(before, err)
	}
	return nil
}

// rollbackBadLiteral implements spec.md §4.3's contract: a literal that
// cannot be compiled for want of space rolls Here back to where it stood
// before this literal was attempted, rather than leaving a half-compiled
// opLiteral/value cell pair dangling.
func (vm *VM) rollbackBadLiteral(before uint, cause error) error {
	vm.arena.SetHere(before)
	return errf("literal", CodeBadLiteral, "%v", cause)
}

// quit is the outer read-eval loop of spec.md §6: it resets the stacks,
// then repeatedly reads a token and interprets it, catching any error and
// looping back to a fresh reset. Returns io.EOF once the bottom (keyboard)
// input source is exhausted and no one-shot word remains to run.
func (vm *VM) quit() error {
	vm.warm()
	for {
		err := vm.catch(vm.interpretOne)
		if err == nil {
			continue
		}
		if err == errBye {
			return errBye
		}
		if err == io.EOF {
			return vm.finishOneShot()
		}
		vm.reportError(err)
		vm.warm()
	}
}

func (vm *VM) interpretOne() error {
	if err := vm.checkTimer(); err != nil {
		return err
	}
	if vm.checkSignal() {
		vm.resetReason = resetSignal
		return errc("quit", CodeCaughtSignal)
	}
	tok, err := vm.token()
	if err != nil {
		return err
	}
	return vm.interpretToken(tok)
}

// finishOneShot runs the -x WORD once after the primary input drains, per
// spec.md §6, then reports EOF again so the caller knows to stop.
func (vm *VM) finishOneShot() error {
	if vm.oneShotWord == "" || vm.ranOneShot {
		return io.EOF
	}
	vm.ranOneShot = true
	if err := vm.catch(func() error { return vm.interpretToken(vm.oneShotWord) }); err != nil {
		vm.reportError(err)
	}
	return io.EOF
}
