package forth_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashforth/forth"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	vm := forth.New(
		forth.WithInput(strings.NewReader(src)),
		forth.WithOutput(&out),
	)
	defer vm.Close()
	err := vm.Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func Test_ArithmeticAndPrint(t *testing.T) {
	require.Equal(t, "5 ", runSource(t, "2 3 + ."))
}

func Test_ColonDefinitionAndCall(t *testing.T) {
	require.Equal(t, "9 ", runSource(t, ": SQUARE DUP * ; 3 SQUARE ."))
}

func Test_IfElseThen(t *testing.T) {
	src := `: SIGNUM DUP 0= IF DROP 0 ELSE 0< IF -1 ELSE 1 THEN THEN ;
	5 SIGNUM . -5 SIGNUM . 0 SIGNUM .`
	require.Equal(t, "1 -1 0 ", runSource(t, src))
}

func Test_DoLoop(t *testing.T) {
	src := `: COUNTUP 5 0 DO I . LOOP ; COUNTUP`
	require.Equal(t, "0 1 2 3 4 ", runSource(t, src))
}

func Test_BeginUntil(t *testing.T) {
	src := `: DOWNFROM ( n -- ) BEGIN DUP . 1- DUP 0< UNTIL DROP ; 3 DOWNFROM`
	require.Equal(t, "3 2 1 0 ", runSource(t, src))
}

func Test_CreateDoesConstantLikeWord(t *testing.T) {
	src := `: CONST CREATE , DOES> @ ; 42 CONST ANSWER ANSWER .`
	require.Equal(t, "42 ", runSource(t, src))
}

func Test_VariableStorage(t *testing.T) {
	src := `VARIABLE X 7 X ! X @ .`
	require.Equal(t, "7 ", runSource(t, src))
}

func Test_PicturedOutput(t *testing.T) {
	src := `: .PAIR <# # # #> TYPE ; 42 .PAIR`
	require.Equal(t, "42", runSource(t, src))
}

func Test_ForgetRemovesWord(t *testing.T) {
	// Errors are non-fatal: QUIT reports them and resumes, per spec.md
	// §6, so TEMP's post-FORGET re-use surfaces as a "?" diagnostic in
	// the output rather than as an error from Run.
	out := runSource(t, ": TEMP 1 2 + ; FORGET TEMP TEMP")
	require.Contains(t, out, "no-word")
}

func Test_UndefinedWordRaisesNoWord(t *testing.T) {
	out := runSource(t, "BOGUSWORD")
	require.Contains(t, out, "no-word")
}

func Test_DivideByZero(t *testing.T) {
	out := runSource(t, "1 0 / .")
	require.Contains(t, out, "div-zero")
}

func Test_BaseVariableRoundTrip(t *testing.T) {
	// FF is parsed and printed in base 16, both set via the BASE variable.
	require.Equal(t, "ff ", runSource(t, "16 BASE ! FF . 10 BASE !"))
}

func Test_BaseOutOfRangeIsRejected(t *testing.T) {
	out := runSource(t, "37 BASE !")
	require.Contains(t, out, "bad-base")
}

func Test_ExecuteThroughNullIsRejected(t *testing.T) {
	out := runSource(t, "0 EXECUTE")
	require.Contains(t, out, "null-ptr")
}
