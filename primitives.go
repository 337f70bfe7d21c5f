package forth

import "strconv"

// primFunc is a primitive's implementation: it operates on vm's stacks and
// state, returning a *VMError on failure (spec.md §3's "primitives are
// ordinary Go functions taking *VM", Design Note "global mutable state").
type primFunc func(vm *VM) error

// primitive is one entry of the static primitives table: its dictionary
// name, compile/run dispatch flag, and implementation.
type primitive struct {
	name string
	flag wordFlag
	fn   primFunc
}

// installPrimitives builds the dictionary's permanent primitives table from
// every *Primitives slice contributed across the package, then seals it so
// that FORGET never truncates past it.
func (vm *VM) installPrimitives() {
	var all []primitive
	all = append(all, arithPrimitives...)
	all = append(all, stackPrimitives...)
	all = append(all, memPrimitives...)
	all = append(all, ioPrimitives...)
	all = append(all, picturePrimitives...)
	all = append(all, compilerPrimitives...)
	all = append(all, controlFlowPrimitives...)
	all = append(all, createPrimitives...)
	all = append(all, systemPrimitives...)

	vm.prims = make([]primitive, len(all))
	for i, p := range all {
		vm.prims[i] = p
		vm.dict.define(dictEntry{
			text: p.name,
			flag: p.flag,
			kind: codePrimitive,
			prim: primCode(i),
		})
	}
	vm.dict.sealPrimitives()
}

// binop pops b then a (a was pushed first) and pushes fn(a, b).
func binop(vm *VM, fn func(a, b int) (int, error)) error {
	b, err := vm.data.Pop()
	if err != nil {
		return err
	}
	a, err := vm.data.Pop()
	if err != nil {
		return err
	}
	r, err := fn(a, b)
	if err != nil {
		return err
	}
	return vm.data.Push(r)
}

func boolCell(b bool) int {
	if b {
		return -1
	}
	return 0
}

var arithPrimitives = []primitive{
	{"+", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a + b, nil })
	}},
	{"-", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a - b, nil })
	}},
	{"*", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a * b, nil })
	}},
	{"/", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) {
			if b == 0 {
				return 0, errc("/", CodeDivZero)
			}
			return a / b, nil
		})
	}},
	{"MOD", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) {
			if b == 0 {
				return 0, errc("MOD", CodeDivZero)
			}
			return a % b, nil
		})
	}},
	{"/MOD", flagNormal, func(vm *VM) error {
		b, err := vm.data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if b == 0 {
			return errc("/MOD", CodeDivZero)
		}
		if err := vm.data.Push(a % b); err != nil {
			return err
		}
		return vm.data.Push(a / b)
	}},
	{"NEGATE", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.data.Push(-v)
	}},
	{"ABS", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if v < 0 {
			v = -v
		}
		return vm.data.Push(v)
	}},
	{"MIN", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) {
			if a < b {
				return a, nil
			}
			return b, nil
		})
	}},
	{"MAX", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) {
			if a > b {
				return a, nil
			}
			return b, nil
		})
	}},
	{"1+", flagNormal, unary(func(a int) int { return a + 1 })},
	{"1-", flagNormal, unary(func(a int) int { return a - 1 })},
	{"2+", flagNormal, unary(func(a int) int { return a + 2 })},
	{"2-", flagNormal, unary(func(a int) int { return a - 2 })},
	{"2*", flagNormal, unary(func(a int) int { return a * 2 })},
	{"2/", flagNormal, unary(func(a int) int { return a / 2 })},

	{"=", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a == b), nil })
	}},
	{"<>", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a != b), nil })
	}},
	{"<", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a < b), nil })
	}},
	{">", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a > b), nil })
	}},
	{"<=", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a <= b), nil })
	}},
	{">=", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return boolCell(a >= b), nil })
	}},
	{"0=", flagNormal, unary(func(a int) int { return boolCell(a == 0) })},
	{"0<", flagNormal, unary(func(a int) int { return boolCell(a < 0) })},
	{"0>", flagNormal, unary(func(a int) int { return boolCell(a > 0) })},
	{"AND", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a & b, nil })
	}},
	{"OR", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a | b, nil })
	}},
	{"XOR", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a ^ b, nil })
	}},
	{"INVERT", flagNormal, unary(func(a int) int { return ^a })},
	{"NOT", flagNormal, unary(func(a int) int { return boolCell(a == 0) })},
	{"LSHIFT", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return a << uint(b), nil })
	}},
	{"RSHIFT", flagNormal, func(vm *VM) error {
		return binop(vm, func(a, b int) (int, error) { return int(uint(a) >> uint(b)), nil })
	}},
}

func unary(fn func(a int) int) primFunc {
	return func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.data.Push(fn(v))
	}
}

var stackPrimitives = []primitive{
	{"DUP", flagNormal, func(vm *VM) error {
		v, err := vm.data.Top(0)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"DROP", flagNormal, func(vm *VM) error { _, err := vm.data.Pop(); return err }},
	{"SWAP", flagNormal, func(vm *VM) error {
		b, err := vm.data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if err := vm.data.Push(b); err != nil {
			return err
		}
		return vm.data.Push(a)
	}},
	{"OVER", flagNormal, func(vm *VM) error {
		v, err := vm.data.Top(1)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"ROT", flagNormal, func(vm *VM) error {
		c, err := vm.data.Pop()
		if err != nil {
			return err
		}
		b, err := vm.data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if err := vm.data.Push(b); err != nil {
			return err
		}
		if err := vm.data.Push(c); err != nil {
			return err
		}
		return vm.data.Push(a)
	}},
	{"-ROT", flagNormal, func(vm *VM) error {
		c, err := vm.data.Pop()
		if err != nil {
			return err
		}
		b, err := vm.data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if err := vm.data.Push(c); err != nil {
			return err
		}
		if err := vm.data.Push(a); err != nil {
			return err
		}
		return vm.data.Push(b)
	}},
	{"?DUP", flagNormal, func(vm *VM) error {
		v, err := vm.data.Top(0)
		if err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
		return vm.data.Push(v)
	}},
	{"PICK", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		v, err := vm.data.Top(n)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"2DUP", flagNormal, func(vm *VM) error {
		b, err := vm.data.Top(0)
		if err != nil {
			return err
		}
		a, err := vm.data.Top(1)
		if err != nil {
			return err
		}
		if err := vm.data.Push(a); err != nil {
			return err
		}
		return vm.data.Push(b)
	}},
	{"2DROP", flagNormal, func(vm *VM) error {
		if _, err := vm.data.Pop(); err != nil {
			return err
		}
		_, err := vm.data.Pop()
		return err
	}},
	{"2SWAP", flagNormal, func(vm *VM) error {
		d, err := vm.data.Pop()
		if err != nil {
			return err
		}
		c, err := vm.data.Pop()
		if err != nil {
			return err
		}
		b, err := vm.data.Pop()
		if err != nil {
			return err
		}
		a, err := vm.data.Pop()
		if err != nil {
			return err
		}
		for _, v := range []int{c, d, a, b} {
			if err := vm.data.Push(v); err != nil {
				return err
			}
		}
		return nil
	}},
	{"2OVER", flagNormal, func(vm *VM) error {
		a, err := vm.data.Top(3)
		if err != nil {
			return err
		}
		b, err := vm.data.Top(2)
		if err != nil {
			return err
		}
		if err := vm.data.Push(a); err != nil {
			return err
		}
		return vm.data.Push(b)
	}},
	{">R", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.ret.Push(v)
	}},
	{"R>", flagNormal, func(vm *VM) error {
		v, err := vm.ret.Pop()
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"R@", flagNormal, func(vm *VM) error {
		v, err := vm.ret.Top(0)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"I", flagNormal, func(vm *VM) error {
		v, err := vm.ret.Top(0)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"J", flagNormal, func(vm *VM) error {
		v, err := vm.ret.Top(2)
		if err != nil {
			return err
		}
		return vm.data.Push(v)
	}},
	{"DEPTH", flagNormal, func(vm *VM) error { return vm.data.Push(vm.data.Depth()) }},
}

// baseAddr is a sentinel, never a real arena address (arena addresses are
// always >=0), through which @ and ! reach the current radix instead of
// arena storage -- the classic "BASE is a variable" ANS idiom, without
// having to carve a permanently reserved cell out of an arena whose base
// address must stay 0 across FORGET/COLD.
const baseAddr = -1

var memPrimitives = []primitive{
	{"@", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if addr == baseAddr {
			return vm.data.Push(vm.base)
		}
		v, err := vm.arena.Load(uint(addr))
		if err != nil {
			return errf("@", CodeRange, "%v", err)
		}
		return vm.data.Push(v)
	}},
	{"!", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if addr == baseAddr {
			if v < 2 || v > 36 {
				return errf("!", CodeBadBase, "%d", v)
			}
			vm.base = v
			return nil
		}
		if err := vm.arena.Stor(uint(addr), v); err != nil {
			return errf("!", CodeRange, "%v", err)
		}
		return nil
	}},
	{"C@", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		v, err := vm.arena.Load(uint(addr))
		if err != nil {
			return errf("C@", CodeRange, "%v", err)
		}
		return vm.data.Push(v & 0xff)
	}},
	{"C!", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if err := vm.arena.Stor(uint(addr), v&0xff); err != nil {
			return errf("C!", CodeRange, "%v", err)
		}
		return nil
	}},
	{"+!", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		old, err := vm.arena.Load(uint(addr))
		if err != nil {
			return errf("+!", CodeRange, "%v", err)
		}
		return vm.arena.Stor(uint(addr), old+v)
	}},
	{"HERE", flagNormal, func(vm *VM) error { return vm.data.Push(int(vm.arena.Here())) }},
	{"CELLSIZE", flagNormal, func(vm *VM) error { return vm.data.Push(strconv.IntSize / 8) }},
	{"ALLOT", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if n < 0 {
			vm.arena.SetHere(vm.arena.Here() - uint(-n))
			return nil
		}
		for i := 0; i < n; i++ {
			if err := vm.arena.Compile(0); err != nil {
				return errf("ALLOT", CodeNoSpace, "%v", err)
			}
		}
		return nil
	}},
	{",", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if err := vm.arena.Compile(v); err != nil {
			return errf(",", CodeNoSpace, "%v", err)
		}
		return nil
	}},
}

var ioPrimitives = []primitive{
	{"EMIT", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.writeRune(rune(v))
	}},
	{"CR", flagNormal, func(vm *VM) error { return vm.writeRune('\n') }},
	{"SPACE", flagNormal, func(vm *VM) error { return vm.writeRune(' ') }},
	{"SPACES", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := vm.writeRune(' '); err != nil {
				return err
			}
		}
		return nil
	}},
	{"KEY", flagNormal, func(vm *VM) error {
		r, err := vm.readRune()
		if err != nil {
			return errf("KEY", CodeNoInput, "%v", err)
		}
		return vm.data.Push(int(r))
	}},
	{"TYPE", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			v, err := vm.arena.Load(uint(addr) + uint(i))
			if err != nil {
				return errf("TYPE", CodeRange, "%v", err)
			}
			if err := vm.writeRune(rune(v)); err != nil {
				return err
			}
		}
		return nil
	}},
	{"COUNT", flagNormal, func(vm *VM) error {
		addr, err := vm.data.Pop()
		if err != nil {
			return err
		}
		n, err := vm.arena.StringLen(uint(addr))
		if err != nil {
			return errf("COUNT", CodeRange, "%v", err)
		}
		if err := vm.data.Push(int(addr) + 1); err != nil {
			return err
		}
		return vm.data.Push(n)
	}},
	{".", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.printNumber(v)
	}},
	{"U.", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.printUnsigned(uint(v))
	}},
	{"BASE", flagNormal, func(vm *VM) error { return vm.data.Push(baseAddr) }},
	{"DECIMAL", flagNormal, func(vm *VM) error { vm.base = 10; return nil }},
	{"HEX", flagNormal, func(vm *VM) error { vm.base = 16; return nil }},
}

// printNumber renders v in the current base using the pictured-output
// queue, signed.
func (vm *VM) printNumber(v int) error {
	neg := v < 0
	n := v
	if neg {
		n = -n
	}
	vm.picture.begin(neg)
	if n == 0 {
		if err := vm.picture.hold('0'); err != nil {
			return err
		}
	}
	var err error
	for n != 0 {
		if n, err = vm.picture.digit(n, vm.base); err != nil {
			return err
		}
	}
	if err := vm.picture.sign(); err != nil {
		return err
	}
	s := vm.picture.finish()
	for _, r := range s {
		if err := vm.writeRune(r); err != nil {
			return err
		}
	}
	return vm.writeRune(' ')
}

func (vm *VM) printUnsigned(v uint) error {
	vm.picture.begin(false)
	n := int(v)
	if n == 0 {
		if err := vm.picture.hold('0'); err != nil {
			return err
		}
	}
	var err error
	for n != 0 {
		if n, err = vm.picture.digit(n, vm.base); err != nil {
			return err
		}
	}
	s := vm.picture.finish()
	for _, r := range s {
		if err := vm.writeRune(r); err != nil {
			return err
		}
	}
	return vm.writeRune(' ')
}

var picturePrimitives = []primitive{
	{"<#", flagNormal, func(vm *VM) error {
		v, err := vm.data.Pop()
		if err != nil {
			return err
		}
		neg := v < 0
		n := v
		if neg {
			n = -n
		}
		vm.picture.begin(neg)
		return vm.data.Push(n)
	}},
	{"#", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		n, err = vm.picture.digit(n, vm.base)
		if err != nil {
			return err
		}
		return vm.data.Push(n)
	}},
	{"#S", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		for n != 0 {
			if n, err = vm.picture.digit(n, vm.base); err != nil {
				return err
			}
		}
		return vm.data.Push(n)
	}},
	{"HOLD", flagNormal, func(vm *VM) error {
		c, err := vm.data.Pop()
		if err != nil {
			return err
		}
		return vm.picture.hold(byte(c))
	}},
	{"SIGN", flagNormal, func(vm *VM) error {
		n, err := vm.data.Pop()
		if err != nil {
			return err
		}
		if n < 0 {
			return vm.picture.hold('-')
		}
		return nil
	}},
	{"#>", flagNormal, func(vm *VM) error {
		if _, err := vm.data.Pop(); err != nil {
			return err
		}
		s := vm.picture.finish()
		addr, err := vm.arena.Cache(s)
		if err != nil {
			return errf("#>", CodeNoSpace, "%v", err)
		}
		if err := vm.data.Push(int(addr) + 1); err != nil {
			return err
		}
		return vm.data.Push(len(s))
	}},
}
