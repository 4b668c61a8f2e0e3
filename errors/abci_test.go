package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			debug:    false,
			wantCode: ErrNotFound.ABCICode(),
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(ErrNotFound, "escrow record"),
			debug:    false,
			wantCode: ErrNotFound.ABCICode(),
			wantLog:  "escrow record: not found",
		},
		"nil is success": {
			err:      nil,
			debug:    false,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib is hidden": {
			err:      stderrors.New("stdlib"),
			debug:    false,
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib is exposed in debug": {
			err:      stderrors.New("stdlib"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib",
		},
		"wrapped stdlib is hidden": {
			err:      Wrap(stderrors.New("stdlib"), "outer"),
			debug:    false,
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if !strings.HasPrefix(log, tc.wantLog) {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic.New("boom"), false); ErrPanic.Is(err) {
		t.Error("panic error must be hidden")
	}
	if err := Redact(stderrors.New("stdlib"), false); err.Error() != internalABCILog {
		t.Errorf("stdlib error must be hidden: %s", err)
	}
	if err := Redact(ErrNotFound.New("gone"), false); !ErrNotFound.Is(err) {
		t.Errorf("registered error must not be hidden: %s", err)
	}
	if err := Redact(stderrors.New("stdlib"), true); err.Error() != "stdlib" {
		t.Errorf("in debug mode no error is hidden: %s", err)
	}
}
