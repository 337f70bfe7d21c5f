package forth

import (
	"fmt"
	"io"
)

// DumpWords exposes the WORDS listing for hosted callers like cmd/forth's
// -dump flag, writing through the VM's configured output.
func (vm *VM) DumpWords() error { return vm.words() }

// DumpWordsTo renders the same WORDS listing to an arbitrary writer, for a
// host that wants to route the dump through its own logging sink (e.g.
// cmd/forth's --dump, which logs it at DUMP level) instead of the VM's
// regular output stream.
func (vm *VM) DumpWordsTo(w io.Writer) error {
	for i := len(vm.dict.entries) - 1; i >= 1; i-- {
		e := vm.dict.entries[i]
		name := e.text
		if i <= vm.dict.primLast {
			name += "*"
		}
		if _, err := fmt.Fprint(w, name+" "); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// words implements WORDS: lists every defined word, newest first, adapted
// from the teacher's dictionary dumper. Primitives are included, marked
// with a trailing asterisk, so a developer can tell at a glance which
// words FORGET cannot touch.
func (vm *VM) words() error {
	for i := len(vm.dict.entries) - 1; i >= 1; i-- {
		e := vm.dict.entries[i]
		name := e.text
		if i <= vm.dict.primLast {
			name += "*"
		}
		if err := vm.writeRuneString(name + " "); err != nil {
			return err
		}
	}
	return vm.writeRune('\n')
}

// see implements SEE: reads a word name and prints a decompiled view of
// its body, reusing runColon's opcode table to render each cell the way it
// would be interpreted, per the teacher's SEE/dumper idiom.
func (vm *VM) see() error {
	name, err := vm.token()
	if err != nil {
		return errf("SEE", CodeNoInput, "%v", err)
	}
	idx := vm.dict.lookup(name)
	if idx == 0 {
		return errf(name, CodeNoWord, "undefined")
	}
	e := vm.dict.entry(idx)
	switch e.kind {
	case codePrimitive:
		return vm.writeRuneString(fmt.Sprintf(": %s ( primitive ) ;\n", e.text))
	case codeCreate:
		return vm.writeRuneString(fmt.Sprintf(": %s ( create, body @%d ) ;\n", e.text, e.body))
	case codeConstant:
		v, _ := vm.arena.Load(e.body)
		return vm.writeRuneString(fmt.Sprintf(": %s ( constant %d ) ;\n", e.text, v))
	case codeDoes:
		return vm.writeRuneString(fmt.Sprintf(": %s ( create @%d, does> @%d ) %s", e.text, e.body, e.does, vm.decompileBody(e.does)))
	case codeColon:
		return vm.writeRuneString(fmt.Sprintf(": %s %s", e.text, vm.decompileBody(e.body)))
	}
	return nil
}

// decompileBody renders a threaded body as text, stopping at the null
// terminator; it does not attempt to re-discover IF/THEN structure, only
// to show the linear cell sequence, which is enough for a developer to
// verify a compile.
func (vm *VM) decompileBody(addr uint) string {
	out := ""
	ip := addr
	for {
		cell, err := vm.arena.Load(ip)
		if err != nil || cell == 0 {
			break
		}
		ip++
		switch cell {
		case opLiteral:
			v, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("%d ", v)
		case opBranch:
			t, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(branch->%d) ", t)
		case opQBranch:
			t, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(?branch->%d) ", t)
		case opDo:
			out += "(do) "
		case opLoop:
			t, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(loop->%d) ", t)
		case opPlusLoop:
			t, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(+loop->%d) ", t)
		case opDotQuote:
			s, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(.\"@%d) ", s)
		case opSQuote:
			s, _ := vm.arena.Load(ip)
			ip++
			n, _ := vm.arena.Load(ip)
			ip++
			out += fmt.Sprintf("(s\"@%d,%d) ", s, n)
		case opDoes:
			out += "(does>) "
		default:
			e := vm.dict.entry(uint(cell))
			out += e.text + " "
		}
	}
	return out + ";\n"
}

func (vm *VM) writeRuneString(s string) error {
	for _, r := range s {
		if err := vm.writeRune(r); err != nil {
			return err
		}
	}
	return nil
}
