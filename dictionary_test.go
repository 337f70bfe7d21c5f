package forth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Dictionary_DefineAndLookup(t *testing.T) {
	d := newDictionary()
	d.sealPrimitives()

	idx := d.define(dictEntry{text: "FOO", kind: codeColon, body: 10})
	require.Equal(t, idx, uint(d.lookup("FOO")))
	require.Equal(t, uint(0), d.lookup("BAR"))
}

func Test_Dictionary_RedefinitionShadowsButDoesNotDedupe(t *testing.T) {
	d := newDictionary()
	d.sealPrimitives()

	first := d.define(dictEntry{text: "X", kind: codeColon, body: 1})
	second := d.define(dictEntry{text: "X", kind: codeColon, body: 2})

	require.NotEqual(t, first, second)
	require.Equal(t, second, uint(d.lookup("X")))
	require.Equal(t, uint(1), d.entry(first).body)
}

func Test_Dictionary_Forget(t *testing.T) {
	d := newDictionary()
	d.define(dictEntry{text: "DUP"})
	d.sealPrimitives()

	d.define(dictEntry{text: "SQUARE", kind: codeColon, body: 5})
	require.NotEqual(t, uint(0), d.lookup("SQUARE"))

	d.forget()
	require.Equal(t, uint(0), d.lookup("SQUARE"))
	require.NotEqual(t, uint(0), d.lookup("DUP"))
}

func Test_Dictionary_ForgetFrom(t *testing.T) {
	d := newDictionary()
	d.define(dictEntry{text: "DUP"})
	d.sealPrimitives()

	a := d.define(dictEntry{text: "A", kind: codeColon, body: 1})
	d.define(dictEntry{text: "B", kind: codeColon, body: 2})

	d.forgetFrom(a)
	require.Equal(t, uint(0), d.lookup("A"))
	require.Equal(t, uint(0), d.lookup("B"))
	require.NotEqual(t, uint(0), d.lookup("DUP"))
}
