package forth

// Control-flow words are compile-only and immediate: they never appear in
// a compiled body themselves, they only ever compile the branch opcodes
// (opBranch/opQBranch/opDo/opLoop/opPlusLoop) that do. Forward and
// backward branch addresses are tracked on a dedicated compile-time-only
// stack (vm.ctrl) rather than the user-visible data stack, so a mismatched
// IF/THEN never corrupts a program's real data; underflow on vm.ctrl
// itself is reported as CodeUnresolved, since it means the source's
// control-flow words do not balance.

func (vm *VM) ctrlPop() (uint, error) {
	v, err := vm.ctrl.Pop()
	if err != nil {
		return 0, errc("control-flow", CodeUnresolved)
	}
	return uint(v), nil
}

// fwdMark compiles op followed by a placeholder cell, pushing the
// placeholder's address for later resolution by fwdResolve.
func (vm *VM) fwdMark(op int) error {
	if err := vm.arena.Compile(op); err != nil {
		return errf("control-flow", CodeNoSpace, "%v", err)
	}
	addr := vm.arena.Here()
	if err := vm.arena.Compile(0); err != nil {
		return errf("control-flow", CodeNoSpace, "%v", err)
	}
	return vm.ctrl.Push(int(addr))
}

// fwdResolve patches the placeholder left by the most recent fwdMark to
// jump to the current Here.
func (vm *VM) fwdResolve() error {
	addr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	return vm.arena.Stor(addr, int(vm.arena.Here()))
}

// bkwMark pushes the current Here as a backward-branch target.
func (vm *VM) bkwMark() error { return vm.ctrl.Push(int(vm.arena.Here())) }

// bkwResolve compiles op followed by the address left by the most recent
// bkwMark.
func (vm *VM) bkwResolve(op int) error {
	addr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	if err := vm.arena.Compile(op); err != nil {
		return errf("control-flow", CodeNoSpace, "%v", err)
	}
	return vm.arena.Compile(int(addr))
}

func (vm *VM) doIf() error    { return vm.fwdMark(opQBranch) }
func (vm *VM) doElse() error {
	ifAddr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	if err := vm.fwdMark(opBranch); err != nil {
		return err
	}
	elseAddr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	if err := vm.ctrl.Push(int(elseAddr)); err != nil {
		return err
	}
	return vm.arena.Stor(ifAddr, int(vm.arena.Here()))
}
func (vm *VM) doThen() error { return vm.fwdResolve() }

func (vm *VM) doBegin() error { return vm.bkwMark() }
func (vm *VM) doUntil() error { return vm.bkwResolve(opQBranch) }
func (vm *VM) doAgain() error { return vm.bkwResolve(opBranch) }
func (vm *VM) doWhile() error { return vm.fwdMark(opQBranch) }
func (vm *VM) doRepeat() error {
	whileAddr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	beginAddr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	if err := vm.arena.Compile(opBranch); err != nil {
		return errf("REPEAT", CodeNoSpace, "%v", err)
	}
	if err := vm.arena.Compile(int(beginAddr)); err != nil {
		return err
	}
	return vm.arena.Stor(whileAddr, int(vm.arena.Here()))
}

func (vm *VM) doDo() error {
	if err := vm.arena.Compile(opDo); err != nil {
		return errf("DO", CodeNoSpace, "%v", err)
	}
	if err := vm.ctrl.Push(int(vm.arena.Here())); err != nil {
		return err
	}
	vm.leaveFixups = append(vm.leaveFixups, nil)
	return nil
}

func (vm *VM) endLoop(op int) error {
	loopAddr, err := vm.ctrlPop()
	if err != nil {
		return err
	}
	if err := vm.arena.Compile(op); err != nil {
		return errf("LOOP", CodeNoSpace, "%v", err)
	}
	if err := vm.arena.Compile(int(loopAddr)); err != nil {
		return err
	}
	if len(vm.leaveFixups) == 0 {
		return errc("LOOP", CodeUnresolved)
	}
	top := vm.leaveFixups[len(vm.leaveFixups)-1]
	vm.leaveFixups = vm.leaveFixups[:len(vm.leaveFixups)-1]
	here := int(vm.arena.Here())
	for _, addr := range top {
		if err := vm.arena.Stor(addr, here); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) doLoop() error     { return vm.endLoop(opLoop) }
func (vm *VM) doPlusLoop() error { return vm.endLoop(opPlusLoop) }

func (vm *VM) doLeave() error {
	if len(vm.leaveFixups) == 0 {
		return errc("LEAVE", CodeUnresolved)
	}
	if err := vm.arena.Compile(opBranch); err != nil {
		return errf("LEAVE", CodeNoSpace, "%v", err)
	}
	addr := vm.arena.Here()
	if err := vm.arena.Compile(0); err != nil {
		return errf("LEAVE", CodeNoSpace, "%v", err)
	}
	top := len(vm.leaveFixups) - 1
	vm.leaveFixups[top] = append(vm.leaveFixups[top], addr)
	return nil
}

var controlFlowPrimitives = []primitive{
	{"IF", flagImmediate, (*VM).doIf},
	{"ELSE", flagImmediate, (*VM).doElse},
	{"THEN", flagImmediate, (*VM).doThen},
	{"BEGIN", flagImmediate, (*VM).doBegin},
	{"UNTIL", flagImmediate, (*VM).doUntil},
	{"AGAIN", flagImmediate, (*VM).doAgain},
	{"WHILE", flagImmediate, (*VM).doWhile},
	{"REPEAT", flagImmediate, (*VM).doRepeat},
	{"DO", flagImmediate, (*VM).doDo},
	{"LOOP", flagImmediate, (*VM).doLoop},
	{"+LOOP", flagImmediate, (*VM).doPlusLoop},
	{"LEAVE", flagImmediate, (*VM).doLeave},
}
