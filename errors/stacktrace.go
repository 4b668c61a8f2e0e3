package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any error it wraps. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes the stack trace frames that belong to this package as
// well as the runtime bottom frames. They carry no information for the
// reader, only where the error was wrapped, not created.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && matchesFunc(st[0],
		"github.com/custodia-one/custodia/errors.Wrap",
		"github.com/custodia-one/custodia/errors.Wrapf",
		"github.com/custodia-one/custodia/errors.WithType",
		"github.com/custodia-one/custodia/errors.Field",
		"github.com/custodia-one/custodia/errors.(*Error).New",
		"github.com/custodia-one/custodia/errors.(*Error).Newf",
	) {
		st = st[1:]
	}
	for len(st) > 0 && matchesFunc(st[len(st)-1],
		"runtime.main",
		"runtime.goexit",
	) {
		st = st[:len(st)-1]
	}
	return st
}

func matchesFunc(f errors.Frame, prefixes ...string) bool {
	fn := funcName(f)
	for _, prefix := range prefixes {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}

func funcName(f errors.Frame) string {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

// writeSimplified writes a compressed [pkgpath/file:line] marker of the
// innermost frame, enough to locate the error origin in a log line.
func writeSimplified(w io.Writer, st errors.StackTrace) {
	if len(st) == 0 {
		return
	}
	file, line := fileLine(st[0])
	if idx := strings.Index(file, "github.com/"); idx >= 0 {
		file = file[idx+len("github.com/"):]
	}
	fmt.Fprintf(w, " [%s:%d]", file, line)
}

// Format renders the error either as a single line with a compressed origin
// marker (%v) or with the complete stack trace (%+v).
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	st := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", st)
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	writeSimplified(s, st)
}

func (e *fieldError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	st := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", st)
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	writeSimplified(s, st)
}
