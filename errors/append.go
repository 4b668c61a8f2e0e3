package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened and
// the instance itself is not included in the result set.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
		} else {
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// multiError represents a group of errors. It is intended to keep together
// all issues found during a single operation (ie. validation) instead of
// failing fast on the first one.
type multiError []error

var _ error = (multiError)(nil)
var _ coder = (multiError)(nil)
var _ unpacker = (multiError)(nil)

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = fmt.Sprintf("\t* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(errs), strings.Join(msgs, "\n"))
}

// ABCICode returns the error code of the first error, consistent with the
// fail fast approach of sequential validation.
func (errs multiError) ABCICode() uint32 {
	if len(errs) == 0 {
		return SuccessABCICode
	}
	return abciCode(errs[0])
}

// Unpack implements the unpacker interface.
func (errs multiError) Unpack() []error {
	return errs
}
