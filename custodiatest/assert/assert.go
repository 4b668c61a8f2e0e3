// Package assert provides a minimal set of test assertions, used
// where pulling in a full assertion library is not worth it.
package assert

import (
	"reflect"
	"testing"

	"github.com/custodia-one/custodia/errors"
)

// Tester is the minimal subset of testing.TB needed to run most
// assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace when the value is an error
		// carrying one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) (res bool) {
	if value == nil {
		return true
	}
	// reflect panics when the value kind has no notion of nil.
	defer func() {
		if recover() != nil {
			res = false
		}
	}()
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics runs the function and fails the test if it returns without
// panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr checks that the got error matches the wanted one, by equality
// or by the want error's Is method, and fails the test with the
// difference otherwise.
func IsErr(t testing.TB, want, got error) {
	t.Helper()

	if want == got {
		return
	}

	type comparator interface {
		Is(error) bool
	}
	if cmp, ok := want.(comparator); ok && cmp.Is(got) {
		return
	}

	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError ensures that the given error contains exactly one field
// error for the field name, matching the wanted error type (tested
// via .Is). Pass nil as the match value to require that no error
// exists for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)

	if want == nil {
		if len(errs) == 0 {
			return
		}
		logAll(t, errs)
		t.Fatalf("expected no error for %q, got %d", fieldName, len(errs))
	}

	switch len(errs) {
	case 0:
		t.Fatal("no error found")
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected error found: %q", errs[0])
		}
	default:
		t.Errorf("want one error, got %d", len(errs))
		logAll(t, errs)
		for _, e := range errs {
			if want.Is(e) {
				return
			}
		}
		t.Fatalf("error not found")
	}
}

func logAll(t testing.TB, errs []error) {
	t.Helper()
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}
