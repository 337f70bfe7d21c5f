package mem

import "errors"

// ErrNoSpace is returned by Arena.Compile and Arena.Cache when the flash
// pointer would meet or pass the string cache pointer.
var ErrNoSpace = errors.New("no space")

// Arena is the flash arena described by the data model: a single
// Cell-addressed space with two pointers walking it toward each other.
// HERE starts at 0 and grows upward as code and data are compiled; the
// string cache starts at Size and grows downward as names are interned.
// The invariant StringData-HERE>0 is enforced by Compile and Cache.
type Arena struct {
	Ints

	size       uint
	here       uint
	stringData uint
	sealed     uint
	haveSealed bool
}

// Init fixes the arena's total size in cells. It must be called before any
// Compile or Cache call; Load/Store of already-written cells works
// regardless.
func (a *Arena) Init(size uint) {
	a.size = size
	a.stringData = size
	a.Limit = size
}

// Size returns the fixed total size of the arena, in cells.
func (a *Arena) Size() uint { return a.size }

// Here returns the current compile pointer.
func (a *Arena) Here() uint { return a.here }

// SetHere forcibly relocates the compile pointer, used by FORGET and by
// the compiler's rollback-on-bad-literal path.
func (a *Arena) SetHere(addr uint) { a.here = addr }

// StringData returns the current string-cache pointer (the low address of
// the most recently interned string).
func (a *Arena) StringData() uint { return a.stringData }

// SetStringData forcibly relocates the string-cache pointer, used by
// FORGET and str_uncache.
func (a *Arena) SetStringData(addr uint) { a.stringData = addr }

// Room reports whether n more cells may be compiled without the compile
// pointer meeting the string cache pointer.
func (a *Arena) Room(n uint) bool { return a.stringData > a.here+n }

// Compile appends val at Here and advances Here, failing with ErrNoSpace
// if doing so would violate the HERE<StringData invariant.
func (a *Arena) Compile(val int) error {
	if !a.Room(1) {
		return ErrNoSpace
	}
	if err := a.Stor(a.here, val); err != nil {
		return err
	}
	a.here++
	return nil
}

// Cache copies s, byte by byte as cells, downward from StringData and
// returns the new (lower) StringData as the string's address. Fails with
// ErrNoSpace if doing so would violate the HERE<StringData invariant.
func (a *Arena) Cache(s string) (uint, error) {
	need := uint(len(s)) + 1
	if a.stringData <= a.here+need {
		return 0, ErrNoSpace
	}
	addr := a.stringData - need
	if err := a.Stor(addr, 0); err != nil {
		return 0, err
	}
	for i := 0; i < len(s); i++ {
		if err := a.Stor(addr+1+uint(i), int(s[i])); err != nil {
			return 0, err
		}
	}
	a.stringData = addr
	return addr, nil
}

// Uncache releases the most recently Cached string, identified by its
// address, returning ErrUnsave if addr is not the current StringData (the
// top of the LIFO string cache).
func (a *Arena) Uncache(addr uint) error {
	if addr != a.stringData {
		return ErrUnsave
	}
	n, err := a.StringLen(addr)
	if err != nil {
		return err
	}
	a.stringData = addr + uint(n) + 1
	return nil
}

// ErrUnsave indicates an attempt to Uncache a string that is not the most
// recently Cached one.
var ErrUnsave = errors.New("unsave: not top of string cache")

// StringLen returns the length, in bytes, of the NUL-terminated string
// cached at addr.
func (a *Arena) StringLen(addr uint) (int, error) {
	n := 0
	for {
		v, err := a.Load(addr + 1 + uint(n))
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return n, nil
		}
		n++
	}
}

// String returns the cached string at addr.
func (a *Arena) String(addr uint) (string, error) {
	n, err := a.StringLen(addr)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := a.Load(addr + 1 + uint(i))
		if err != nil {
			return "", err
		}
		buf[i] = byte(v)
	}
	return string(buf), nil
}

// Seal records the current StringData as the low-water mark that FORGET
// restores (rather than the arena top) once startup strings are sealed.
func (a *Arena) Seal() {
	a.sealed = a.stringData
	a.haveSealed = true
}

// LowWaterMark returns the sealed StringData mark, or the arena's top if
// Seal was never called.
func (a *Arena) LowWaterMark() uint {
	if a.haveSealed {
		return a.sealed
	}
	return a.size
}

// Reset implements FORGET's arena half: HERE returns to 0, StringData
// returns to the low-water mark.
func (a *Arena) Reset() {
	a.here = 0
	a.stringData = a.LowWaterMark()
}
