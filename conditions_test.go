package custodia_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := custodia.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := custodia.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     custodia.Condition
		wantErr  *errors.Error
		wantExt  string
		wantTyp  string
		wantData []byte
	}{
		"valid condition": {
			cond:     custodia.NewCondition("escrow", "program", []byte("custodia/1")),
			wantExt:  "escrow",
			wantTyp:  "program",
			wantData: []byte("custodia/1"),
		},
		"data may contain a newline": {
			cond:     custodia.NewCondition("token", "account", []byte("a\nb")),
			wantExt:  "token",
			wantTyp:  "account",
			wantData: []byte("a\nb"),
		},
		"missing data section": {
			cond:    custodia.Condition("foo/bar/"),
			wantErr: errors.ErrInvalidInput,
		},
		"extension too short": {
			cond:    custodia.Condition("ab/bar/data"),
			wantErr: errors.ErrInvalidInput,
		},
		"garbage": {
			cond:    custodia.Condition("foobar"),
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err != nil {
				assert.Error(t, tc.cond.Validate())
				return
			}
			assert.NoError(t, tc.cond.Validate())
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantTyp, typ)
			assert.Equal(t, tc.wantData, data)
		})
	}
}

func TestNewAddress(t *testing.T) {
	addr := custodia.NewAddress([]byte("some data"))
	require.NoError(t, addr.Validate())
	assert.Len(t, addr, custodia.AddressLength)
	// deterministic
	assert.Equal(t, addr, custodia.NewAddress([]byte("some data")))
	assert.False(t, addr.Equals(custodia.NewAddress([]byte("other data"))))
	// nil input gives nil address
	assert.Nil(t, custodia.NewAddress(nil))
}

func TestParseAddress(t *testing.T) {
	orig := custodia.NewAddress([]byte("round trip"))
	parsed, err := custodia.ParseAddress(orig.String())
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)

	// wrong length is rejected even if valid hex
	if _, err := custodia.ParseAddress("C0FFEE"); !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("got error: %+v", err)
	}
	if _, err := custodia.ParseAddress("not-hex"); err == nil {
		t.Fatal("expected error")
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr custodia.Address
	}{
		"default decoding": {
			json:     `"6865782d61646472000000000000000000000000"`,
			wantAddr: custodia.Address("hex-addr\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"),
		},
		"hex decoding": {
			json:     `"hex:6865782d61646472000000000000000000000000"`,
			wantAddr: custodia.Address("hex-addr\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: custodia.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInvalidType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a custodia.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition custodia.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: custodia.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got custodia.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   custodia.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   custodia.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}
