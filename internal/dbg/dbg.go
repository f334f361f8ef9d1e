//go:build debug

// Package dbg includes debugging helpers that are compiled in only with the
// debug build tag.
package dbg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled is true when the binary was built with the debug tag.
const Enabled = true

// Log prints debugging information to stderr.
//
// context is optional printf-style args rendered before operation, useful
// for tagging a run of related log lines (e.g. a sample run id) without
// repeating it in every call site.
func Log(context []any, operation string, format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	file = filepath.Base(file)

	buf := new(strings.Builder)
	fmt.Fprintf(buf, "%s:%d [g%04d", file, line, routine.Goid())
	if len(context) >= 1 {
		fmt.Fprintf(buf, ", "+context[0].(string), context[1:]...)
	}
	fmt.Fprintf(buf, "] %s: ", operation)
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')

	os.Stderr.WriteString(buf.String())
}

// Assert panics if cond is false. Only compiled in under the debug tag, so
// callers must not rely on it for real validation.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("redosprobe: internal assertion failed: "+format, args...))
	}
}
