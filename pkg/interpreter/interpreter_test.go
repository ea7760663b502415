package interpreter_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/pkg/interpreter"
	"github.com/tarn-lang/tarn/pkg/parser"
)

func evalSource(t *testing.T, source string) (string, error) {
	t.Helper()

	r := require.New(t)
	logger := slogt.New(t)

	prog, err := parser.Parse(t.Name(), source)
	r.NoError(err)

	var output bytes.Buffer

	interp, err := interpreter.New(logger, interpreter.Config{Stdout: &output})
	r.NoError(err)

	err = interp.Execute(prog)

	return output.String(), err
}

func TestScripts(t *testing.T) {
	t.Parallel()

	dir := os.DirFS("./testdata/")
	testFiles, err := fs.Glob(dir, "*.txt")
	if err != nil {
		t.Fatal(err)
	}

	for _, testFile := range testFiles {
		name := strings.Split(testFile, ".")[0]
		t.Run(name, func(t *testing.T) {
			r := require.New(t)
			logger := slogt.New(t)

			testData, err := fs.ReadFile(dir, testFile)
			r.NoError(err)

			parts := bytes.SplitN(testData, []byte("\n---\n"), 2)
			source := string(bytes.TrimSpace(parts[0]))
			expected := strings.TrimSpace(string(parts[1]))

			prog, err := parser.Parse(testFile, source)
			r.NoError(err)

			var output bytes.Buffer

			interp, err := interpreter.New(logger, interpreter.Config{Stdout: &output})
			r.NoError(err)

			err = interp.Execute(prog)
			r.NoError(err)

			result := strings.TrimSpace(output.String())
			r.Equal(expected, result)
		})
	}
}

func TestUndefinedVariableLookup(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `print missing;`)
	r.Error(err)

	var undefErr interpreter.UndefinedVariableError
	r.True(errors.As(err, &undefErr))
	r.Equal("missing", undefErr.Name)
}

func TestAssignmentNeverDeclares(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `missing = 1;`)
	r.Error(err)

	var undefErr interpreter.UndefinedVariableError
	r.True(errors.As(err, &undefErr))
	r.Equal("missing", undefErr.Name)
}

func TestUndefinedVariableInsideFunction(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `
fun f() {
  return missing;
}
f();
`)
	r.Error(err)

	var undefErr interpreter.UndefinedVariableError
	r.True(errors.As(err, &undefErr))
}

func TestArityMismatch(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `
fun f(a, b) {
  return a + b;
}
f(1);
`)
	r.Error(err)

	var arityErr interpreter.ArityMismatchError
	r.True(errors.As(err, &arityErr))
	r.Equal("f", arityErr.Name)
	r.Equal(2, arityErr.Want)
	r.Equal(1, arityErr.Got)
}

func TestCallNonFunction(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `
var x = 1;
x();
`)
	r.Error(err)
}

func TestReturnOutsideFunction(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `return 1;`)
	r.Error(err)
}

func TestBreakOutsideLoop(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `break;`)
	r.Error(err)
}

func TestBreakInFunctionStopsAtCallBoundary(t *testing.T) {
	r := require.New(t)

	// The callee has no enclosing loop; its break must become an error
	// instead of terminating the caller's loop.
	output, err := evalSource(t, `
fun f() {
  break;
}
var n = 0;
while (n < 3) {
  n = n + 1;
  f();
}
print n;
`)
	r.Error(err)
	r.Contains(err.Error(), "break or continue outside of loop")
	r.Equal("", output)
}

func TestContinueInFunctionStopsAtCallBoundary(t *testing.T) {
	r := require.New(t)

	_, err := evalSource(t, `
fun f() {
  continue;
}
for (var n = 0; n < 3; n = n + 1) {
  f();
}
`)
	r.Error(err)
	r.Contains(err.Error(), "break or continue outside of loop")
}

func TestBreakInClosureInsideLoopBody(t *testing.T) {
	r := require.New(t)

	// Even when the closure is created inside a loop, the loop is not part
	// of the closure's body, so its break still may not escape the call.
	_, err := evalSource(t, `
while (true) {
  fun f() {
    break;
  }
  f();
}
`)
	r.Error(err)
	r.Contains(err.Error(), "break or continue outside of loop")
}

func TestCallDepthLimit(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	prog, err := parser.Parse(t.Name(), `
fun loop() {
  return loop();
}
loop();
`)
	r.NoError(err)

	interp, err := interpreter.New(logger, interpreter.Config{Stdout: &bytes.Buffer{}, MaxCallDepth: 32})
	r.NoError(err)

	err = interp.Execute(prog)
	r.Error(err)
	r.Contains(err.Error(), "call stack exceeded")
}

func TestGlobalStatePersistsAcrossExecutes(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)

	var output bytes.Buffer

	interp, err := interpreter.New(logger, interpreter.Config{Stdout: &output})
	r.NoError(err)

	first, err := parser.Parse("first", `var n = 41;`)
	r.NoError(err)
	r.NoError(interp.Execute(first))

	second, err := parser.Parse("second", `print n + 1;`)
	r.NoError(err)
	r.NoError(interp.Execute(second))

	r.Equal("42\n", output.String())
}

func TestClockBuiltin(t *testing.T) {
	r := require.New(t)

	output, err := evalSource(t, `print clock() > 0;`)
	r.NoError(err)
	r.Equal("true\n", output)
}
